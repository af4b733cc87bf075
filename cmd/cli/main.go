// Package main is the entry point for the fieldquote CLI.
package main

import (
	"os"

	"fieldquote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
