package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctsrd-cheri/cheriloc/internal/app"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/projfile"
	"github.com/ctsrd-cheri/cheriloc/internal/registry"
	"github.com/ctsrd-cheri/cheriloc/internal/usecase"
	"github.com/spf13/cobra"
)

// newChangesCommand creates the changes command.
func newChangesCommand(c *app.Container) *cobra.Command {
	var setName string
	var projectsFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "changes",
		Short: "Measure CHERI changes for a project set",
		Long: `Changes runs cloc --count-and-diff between each project's baseline and
CHERI revisions, prints per-project and summary statistics, and writes
the LaTeX table and macro files. Completed cloc reports are reused from
the report directory; delete a report to force a new analysis run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadProjectSet(setName, projectsFile)
			if err != nil {
				return err
			}

			uc := c.ComputeChangesUseCase(cmd.OutOrStdout(), cmd.ErrOrStderr())
			out, err := uc.Execute(cmd.Context(), usecase.ComputeChangesInput{
				Projects:       set.Projects,
				Coverage:       set.Coverage,
				CoverageIgnore: set.CoverageIgnore,
				SourceRoot:     c.Config.Paths.SourceRoot,
			})
			if err != nil {
				return err
			}

			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), out.Table)
			}
			latexDir := c.Config.Paths.LatexDir
			if err := writeLatexFile(latexDir, "table-data-rows.tex", out.TableRows); err != nil {
				return err
			}
			if err := writeLatexFile(latexDir, "table.tex", out.Table); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DONE")

			if verbose && out.Worst != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Largest relative change: %s (%.2f%% SLOC)\n",
					out.Worst.Project.Name, out.Worst.ChangedLOCPercent())
				fmt.Fprintln(cmd.OutOrStdout(), out.Macros)
			}
			return writeLatexFile(latexDir, "changes-macros.tex", out.Macros)
		},
	}

	cmd.Flags().StringVar(&setName, "set", registry.DefaultSetName, "Built-in project set to analyze")
	cmd.Flags().StringVar(&projectsFile, "projects", "", "YAML project file to analyze instead of a built-in set")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print the rendered table and macros")

	return cmd
}

// loadProjectSet resolves the projects to analyze. An explicit project
// file wins over the named built-in set.
func loadProjectSet(setName, projectsFile string) (*registry.Set, error) {
	if projectsFile != "" {
		return projfile.Load(projectsFile)
	}
	return registry.Get(setName)
}

func writeLatexFile(dir, name, content string) error {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
