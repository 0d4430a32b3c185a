// This is the main-driver for our compiler.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/skx/subc/codegen"
	"github.com/skx/subc/compiler"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the driver logic, split out from main so it's testable
// without actually calling os.Exit.
func run(args []string) int {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return 1
	}

	source, err := readSource(fs.args())
	if err != nil {
		errColor.Fprintf(os.Stderr, "Error reading input: %s\n", err)
		return 1
	}

	comp := compiler.New(source)
	comp.SetTarget(targetFromEnv())

	if fs.debug {
		warnColor.Fprintln(os.Stderr, "debug: inserting int3 at each function entry")
		comp.SetDebug(true)
	}

	out, err := comp.Compile()
	if err != nil {
		errColor.Fprintf(os.Stderr, "Error compiling: %s\n", err)
		return 1
	}

	if !fs.compile {
		fmt.Print(out)
		return 0
	}

	if err := assembleAndLink(out, fs.output); err != nil {
		errColor.Fprintf(os.Stderr, "Error assembling/linking: %s\n", err)
		return 1
	}

	if fs.run {
		if err := runBinary(fs.output); err != nil {
			errColor.Fprintf(os.Stderr, "Error launching %s: %s\n", fs.output, err)
			return 1
		}
	}

	return 0
}

// targetFromEnv reads the TARGET environment variable once, to select
// the Darwin symbol-naming convention when it's set to "mac".
func targetFromEnv() codegen.Target {
	if strings.EqualFold(os.Getenv("TARGET"), "mac") {
		return codegen.Darwin
	}
	return codegen.Linux
}

// readSource reads the single positional source-file argument. With
// no positional argument it falls back to standard input.
func readSource(positional []string) (string, error) {
	if len(positional) == 0 {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	if len(positional) > 1 {
		return "", fmt.Errorf("expected at most one source file, got %d", len(positional))
	}
	data, err := os.ReadFile(positional[0])
	return string(data), err
}

// assembleAndLink pipes assembly text into an external assembler and
// linker (cc) and writes the resulting binary to output.
func assembleAndLink(asm, output string) error {
	cc := exec.Command("cc", "-static", "-o", output, "-x", "assembler", "-")
	cc.Stdout = os.Stdout
	cc.Stderr = os.Stderr

	var buf bytes.Buffer
	buf.WriteString(asm)
	cc.Stdin = &buf

	return cc.Run()
}

// runBinary executes the freshly linked binary, inheriting stdio, so
// its own exit status is observable by the caller of subc.
func runBinary(path string) error {
	exe := exec.Command(absOrSelf(path))
	exe.Stdout = os.Stdout
	exe.Stderr = os.Stderr
	exe.Stdin = os.Stdin
	return exe.Run()
}

// absOrSelf ensures a bare filename like "a.out" is run as "./a.out",
// the way a shell would require, rather than being looked up on PATH.
func absOrSelf(path string) string {
	if strings.ContainsRune(path, filepath.Separator) {
		return path
	}
	return "." + string(filepath.Separator) + path
}
