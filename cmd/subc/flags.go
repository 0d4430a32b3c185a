package main

import "flag"

// cliFlags holds the command-line flags: -debug, -compile, -run
// (which implies -compile), and -o for the output binary's path.
type cliFlags struct {
	debug   bool
	compile bool
	run     bool
	output  string

	fs *flag.FlagSet
}

func newFlagSet() *cliFlags {
	c := &cliFlags{fs: flag.NewFlagSet("subc", flag.ContinueOnError)}
	c.fs.BoolVar(&c.debug, "debug", false, "Insert a breakpoint at each function's entry in the generated output.")
	c.fs.BoolVar(&c.compile, "compile", false, "Assemble and link the program, via invoking an external toolchain.")
	c.fs.BoolVar(&c.run, "run", false, "Run the binary, post-compile (implies -compile).")
	c.fs.StringVar(&c.output, "o", "a.out", "The path to write the linked binary to.")
	return c
}

func (c *cliFlags) Parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.run {
		c.compile = true
	}
	return nil
}

func (c *cliFlags) args() []string {
	return c.fs.Args()
}
