package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ctsrd-cheri/cheriloc/internal/app"
	"github.com/ctsrd-cheri/cheriloc/internal/registry"
	"github.com/ctsrd-cheri/cheriloc/internal/usecase"
	"github.com/spf13/cobra"
)

// newProjectsCommand creates the projects command.
func newProjectsCommand(c *app.Container) *cobra.Command {
	var setName string
	var projectsFile string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects of a set",
		Long: `Projects lists the members of a project set with their pinned
revisions. Commented projects are marked with a leading #.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadProjectSet(setName, projectsFile)
			if err != nil {
				return err
			}

			out, err := c.ListProjectsUseCase().Execute(cmd.Context(), usecase.ListProjectsInput{
				Projects: set.Projects,
			})
			if err != nil {
				return err
			}
			return printProjectList(cmd.OutOrStdout(), out.Rows)
		},
	}

	cmd.Flags().StringVar(&setName, "set", registry.DefaultSetName, "Built-in project set to list")
	cmd.Flags().StringVar(&projectsFile, "projects", "", "YAML project file to list instead of a built-in set")

	return cmd
}

// printProjectList renders project rows in table format.
func printProjectList(w io.Writer, rows []usecase.ProjectRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSOURCE\tREVISIONS")
	for _, row := range rows {
		name := row.Name
		if row.Commented {
			name = "# " + name
		}
		revisions := row.Revisions
		if revisions == "" {
			revisions = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, row.Kind, row.Source, revisions)
	}
	return tw.Flush()
}
