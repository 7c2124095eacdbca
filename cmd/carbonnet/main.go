package main

import (
	"fmt"
	"os"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/cli"
)

// version is set via -ldflags at build time.
var version = "dev"

func run() error {
	return cli.NewRootCmd(version).Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
