package cli

import (
	"github.com/ctsrd-cheri/cheriloc/internal/app"
	"github.com/ctsrd-cheri/cheriloc/internal/usecase"
	"github.com/spf13/cobra"
)

// newCountCommand creates the count command.
func newCountCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count benchmark sources with cloc",
		Long: `Count runs cloc over the SPEC CPU2006 benchmark sources below the
source root and forwards cloc's own report to stdout. Nothing else is
printed, and cloc's exit status becomes the command's exit status.`,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.CountBenchmarksUseCase(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return uc.Execute(cmd.Context(), usecase.CountBenchmarksInput{
				SourceRoot: c.Config.Paths.SourceRoot,
			})
		},
	}
}
