// Command archic compiles a human-authored YAML configuration source into
// the binary blob image cmd/archi loads (spec §6.1, §A.1).
package main

import (
	"fmt"
	"os"

	"github.com/archipelago-host/archi/internal/archic"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: archic <source.yaml> <output.blob>")
		os.Exit(2)
	}

	data, err := archic.CompileFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "archic: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(os.Args[2], data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "archic: %v\n", err)
		os.Exit(1)
	}
}
