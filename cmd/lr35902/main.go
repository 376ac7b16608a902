// Command lr35902 runs, inspects and disassembles Game Boy ROM images.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lr35902: %v\n", err)
		os.Exit(1)
	}
}
