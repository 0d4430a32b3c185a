// Package compiler wires the lexer, parser, and code generator
// together behind the small public API the driver uses: New,
// SetDebug, SetTarget, and Compile.
package compiler

import (
	"github.com/skx/subc/ast"
	"github.com/skx/subc/codegen"
	"github.com/skx/subc/parser"
)

// Compiler holds the state needed to compile one source program.
type Compiler struct {
	// source holds the program text we're compiling.
	source string

	// debug controls whether generated functions get a breakpoint
	// instruction at entry.
	debug bool

	// target selects the symbol-naming convention of the output.
	target codegen.Target
}

// New creates a new compiler over the given source text.
func New(source string) *Compiler {
	return &Compiler{source: source, target: codegen.Linux}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// SetTarget changes the symbol-naming convention used in the output.
func (c *Compiler) SetTarget(t codegen.Target) {
	c.target = t
}

// Compile runs the full pipeline — parse, then generate — and
// returns the resulting assembly text. On any error no partial output
// is returned: either the whole program compiles, or nothing does.
func (c *Compiler) Compile() (string, error) {
	funcs, err := c.parse()
	if err != nil {
		return "", err
	}

	gen := codegen.New(c.target, c.debug)
	out, err := gen.Generate(funcs)
	if err != nil {
		return "", err
	}

	return out, nil
}

// parse runs the lexer+parser stage, producing a forest of function
// definitions.
func (c *Compiler) parse() ([]ast.Node, error) {
	p := parser.New(c.source)
	return p.ParseProgram()
}
