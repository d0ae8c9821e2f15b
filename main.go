package main

import (
	"fmt"
	"os"

	"github.com/idelchi/sheetlist/internal/cli"
)

// version is set at build time via -ldflags.
var version = "unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
