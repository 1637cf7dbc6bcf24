// Package main is the entry point for the cheriloc CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ctsrd-cheri/cheriloc/internal/app"
	"github.com/ctsrd-cheri/cheriloc/internal/cli"
	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		code, silent := exitCode(err)
		if !silent {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(code)
	}
}

func run() error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(cwd)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// exitCode maps an error to the process exit status. A cloc exit
// status passes through untouched and stays silent; the tool already
// reported on its own streams.
func exitCode(err error) (code int, silent bool) {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Status(), true
	}
	return 1, false
}
