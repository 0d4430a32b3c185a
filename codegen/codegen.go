// Package codegen walks the typed AST produced by the parser and
// emits GNU-syntax (AT&T operand order) x86-64 assembly implementing
// the System V AMD64 calling convention, under a stack-machine
// discipline: every expression leaves its result on top of the
// runtime stack, and every operator pops what it needs and pushes its
// result back.
package codegen

import (
	"fmt"
	"strings"

	"github.com/skx/subc/ast"
	"github.com/skx/subc/label"
)

// Target selects the symbol-naming convention of the output.
type Target int

const (
	// Linux is the default System V target: symbols are unprefixed,
	// and `.global` is spelled that way.
	Linux Target = iota

	// Darwin prefixes every defined/referenced symbol with an
	// underscore, and spells the visibility directive `.globl`.
	Darwin
)

// wordSize is the size, in bytes, of a frame slot and of every value
// this compiler manipulates (there is only one type: a 64-bit signed
// integer).
const wordSize = 8

// argRegisters holds the AT&T-syntax names of the System V
// integer/pointer argument registers, in order. At most six arguments
// are supported; a seventh would need to be passed on the stack,
// which this compiler doesn't implement.
var argRegisters = []string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// Generator holds the state needed to emit one translation unit.
type Generator struct {
	target Target
	debug  bool

	labels *label.Supplier

	out strings.Builder

	// Per-function state, reset by genFunction.
	sym       *ast.SymbolTable
	epilogue  string
	loopStack []loopContext
}

// loopContext records the labels `break`/`continue` jump to for the
// loop they're lexically nested inside.
type loopContext struct {
	breakLabel    string
	continueLabel string
}

// New creates a Generator targeting the given platform.
func New(target Target, debug bool) *Generator {
	return &Generator{target: target, debug: debug, labels: label.New()}
}

// Generate emits assembly for every function definition in funcs.
func (g *Generator) Generate(funcs []ast.Node) (string, error) {
	g.out.WriteString(".text\n")

	for _, fn := range funcs {
		if err := g.genFunction(fn); err != nil {
			return "", err
		}
	}

	return g.out.String(), nil
}

// symbolName applies the target's symbol-naming convention.
func (g *Generator) symbolName(name string) string {
	if g.target == Darwin {
		return "_" + name
	}
	return name
}

// globalDirective returns the target's spelling of the
// visibility-export directive.
func (g *Generator) globalDirective() string {
	if g.target == Darwin {
		return ".globl"
	}
	return ".global"
}

// emit appends a line of assembly, indented like hand-written asm.
func (g *Generator) emit(format string, args ...interface{}) {
	g.out.WriteString("\t")
	g.out.WriteString(fmt.Sprintf(format, args...))
	g.out.WriteString("\n")
}

// label writes a bare label line (no leading tab).
func (g *Generator) label(name string) {
	g.out.WriteString(name)
	g.out.WriteString(":\n")
}

// genFunction emits one function's prologue, body, and epilogue.
func (g *Generator) genFunction(fn ast.Node) error {
	g.sym = fn.Frame
	g.epilogue = g.labels.Next("epilogue_" + fn.Name)
	g.loopStack = nil

	sym := g.symbolName(fn.Name)

	g.out.WriteString(fmt.Sprintf("%s %s\n", g.globalDirective(), sym))
	g.label(sym)

	// Prologue.
	g.emit("push %%rbp")
	g.emit("mov %%rsp, %%rbp")
	if slots := fn.Frame.Slots(); slots > 0 {
		g.emit("sub $%d, %%rsp", slots*wordSize)
	}

	if g.debug {
		g.emit("int3")
	}

	// Store incoming parameters into their frame slots.
	for i, name := range fn.Params {
		if i >= len(argRegisters) {
			break
		}
		off, _ := fn.Frame.Lookup(name)
		g.emit("mov %s, -%d(%%rbp)", argRegisters[i], off*wordSize)
	}

	if err := g.genStmt(*fn.Body); err != nil {
		return err
	}

	// Epilogue. Every `return` jumps here; falling off the end of
	// the function arrives here too, with whatever's left in rax.
	g.label(g.epilogue)
	g.emit("mov %%rbp, %%rsp")
	g.emit("pop %%rbp")
	g.emit("ret")
	g.out.WriteString("\n")

	return nil
}
