package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "heroctl failed: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command and always releases the console, including when
// the command itself fails.
func run(args []string, stdout, stderr io.Writer) (err error) {
	root, c := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer func() {
		if cerr := c.teardown(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return root.Execute()
}
