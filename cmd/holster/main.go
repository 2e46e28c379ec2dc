// Package main is the entry point for the holster CLI.
package main

import (
	"os"

	"github.com/thoreinstein/holster/cmd/holster/commands"
	"github.com/thoreinstein/holster/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
