package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ctsrd-cheri/cheriloc/internal/app"
	"github.com/ctsrd-cheri/cheriloc/internal/tui/topfiles"
	"github.com/ctsrd-cheri/cheriloc/internal/usecase"
	"github.com/spf13/cobra"
)

// launchTopFilesTUIFunc is a function variable for launching the report
// browser, allowing it to be mocked in tests.
var launchTopFilesTUIFunc = launchTopFilesTUI

// newTopFilesCommand creates the top-files command.
func newTopFilesCommand(c *app.Container) *cobra.Command {
	var limit int
	var includeSame bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "top-files <report.json>",
		Short: "Show the most changed files of a by-file diff report",
		Long: `Top-files reads a by-file diff report from the report directory and
prints, for each change bucket, the files with the most changed code
lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return launchTopFilesTUIFunc(c, args[0])
			}

			out, err := c.TopFilesUseCase().Execute(cmd.Context(), usecase.TopFilesInput{
				Path:        args[0],
				Limit:       limit,
				IncludeSame: includeSame,
			})
			if err != nil {
				return err
			}
			return printTopFiles(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", usecase.DefaultTopFilesLimit, "Number of files to show per bucket")
	cmd.Flags().BoolVar(&includeSame, "same", false, "Also show the unchanged-files bucket")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the report in a TUI")

	return cmd
}

// printTopFiles renders each bucket of the report as an aligned table.
func printTopFiles(w io.Writer, out *usecase.TopFilesOutput) error {
	for _, bucket := range out.Buckets {
		fmt.Fprintf(w, "======= %s ========\n", bucket.Name)
		if err := printBucket(w, bucket.Entries); err != nil {
			return err
		}
	}
	return nil
}

func printBucket(w io.Writer, entries []usecase.FileEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCODE\tCOMMENT\tBLANK")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", e.Name, e.Counts.Code, e.Counts.Comment, e.Counts.Blank)
	}
	return tw.Flush()
}

// launchTopFilesTUI opens the interactive report browser.
func launchTopFilesTUI(c *app.Container, path string) error {
	model := topfiles.New(c, path)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
