package usecase

import (
	"context"
	"fmt"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// ListProjectsInput contains the input parameters for ListProjects.
type ListProjectsInput struct {
	Projects []*domain.Project
}

// ProjectRow is one line of the project listing.
type ProjectRow struct {
	Name      string
	Kind      string
	Source    string // Repository subdirectory or directory count
	Revisions string // Pinned branches
	Commented bool
}

// ListProjectsOutput contains the rows of the project listing.
type ListProjectsOutput struct {
	Rows []ProjectRow
}

// ListProjects describes the projects of a set, in set order.
type ListProjects struct{}

// NewListProjects creates a new ListProjects use case.
func NewListProjects() *ListProjects {
	return &ListProjects{}
}

// Execute returns one row per project.
func (uc *ListProjects) Execute(_ context.Context, in ListProjectsInput) (*ListProjectsOutput, error) {
	rows := make([]ProjectRow, 0, len(in.Projects))
	for _, p := range in.Projects {
		row := ProjectRow{
			Name:      p.Name,
			Kind:      p.Kind().String(),
			Commented: p.Commented,
		}
		switch p.Kind() {
		case domain.KindDiff:
			row.Source = p.RepoSubdir
			row.Revisions = p.Baseline.Branch + ".." + p.Cheri.Branch
		case domain.KindUnmodified:
			row.Source = p.RepoSubdir
			row.Revisions = p.Baseline.Branch
		case domain.KindDirectories:
			row.Source = fmt.Sprintf("%d directories", len(p.Directories))
		}
		rows = append(rows, row)
	}
	return &ListProjectsOutput{Rows: rows}, nil
}
