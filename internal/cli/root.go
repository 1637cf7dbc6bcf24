// Package cli provides the command-line interface for cheriloc.
package cli

import (
	"fmt"

	"github.com/ctsrd-cheri/cheriloc/internal/app"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for cheriloc.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var clocPath string
	var sourceRoot string

	root := &cobra.Command{
		Use:   "cheriloc",
		Short: "Count CHERI source changes with cloc",
		Long: `cheriloc measures how much code changed to add CHERI support.
It drives cloc over pinned pairs of git revisions, caches the JSON
reports under the report directory, and renders the results as
plain-text tables and LaTeX macros.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			if clocPath != "" {
				c.SetClocPath(clocPath)
			}
			if sourceRoot != "" {
				c.SetSourceRoot(sourceRoot)
			}

			// count forwards cloc's output untouched, so keep config
			// warnings off its streams.
			if cmd.Name() == "count" {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&clocPath, "cloc", "", "Path to the cloc executable")
	root.PersistentFlags().StringVar(&sourceRoot, "source-root", "", "Directory containing the project checkouts")

	root.AddCommand(
		newCountCommand(c),
		newChangesCommand(c),
		newTopFilesCommand(c),
		newProjectsCommand(c),
	)

	return root
}
