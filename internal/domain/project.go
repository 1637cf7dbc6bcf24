// Package domain defines the projects cheriloc measures and the change
// reports derived from cloc's output.
package domain

import (
	"fmt"
	"path"
)

// GitRef pins a branch to the commit hash it had when the published
// numbers were last computed. Counting always uses the pinned hash; a
// moved branch only produces a warning.
type GitRef struct {
	Branch string
	Hash   string
}

// ProjectKind discriminates how a project is counted.
type ProjectKind int

const (
	// KindDiff counts a baseline revision and diffs it against a CHERI branch.
	KindDiff ProjectKind = iota
	// KindUnmodified counts a single revision and reports it as unchanged.
	KindUnmodified
	// KindDirectories counts checked-out directories and reports them as unchanged.
	KindDirectories
)

// String returns the kind name used in listings.
func (k ProjectKind) String() string {
	switch k {
	case KindDiff:
		return "diff"
	case KindUnmodified:
		return "unmodified"
	case KindDirectories:
		return "directories"
	default:
		return "unknown"
	}
}

// Mark is one qualitative cell of the results table: unknown, yes, no,
// or free text.
type Mark struct {
	Text  string
	Known bool
	Yes   bool
}

// MarkYes returns a checked cell.
func MarkYes() Mark { return Mark{Known: true, Yes: true} }

// MarkNo returns an empty cell.
func MarkNo() Mark { return Mark{Known: true} }

// MarkText returns a free-text cell.
func MarkText(text string) Mark { return Mark{Text: text, Known: true} }

// ExtraColumns holds the qualitative assessment cells rendered after the
// counts in the results table.
type ExtraColumns struct {
	// OverrideText replaces all six cells with one spanning note.
	OverrideText string
	Efficiency   Mark
	Offset       Mark
	PtrCmp       Mark
	Cherish      Mark
	Other        Mark
	Notes        string
}

// Project describes one source tree whose CHERI changes are measured.
// Exactly one of three shapes is valid: a baseline/CHERI branch pair
// (diff), a single pinned revision (unmodified), or a list of plain
// directories.
type Project struct {
	// Name keys the cached report files.
	Name string
	// LatexName overrides Name in rendered tables.
	LatexName string
	// RepoSubdir locates the git checkout below the source root.
	RepoSubdir string
	// BaseDirectory optionally re-roots a directory count below the source root.
	BaseDirectory string
	Baseline      *GitRef
	Cheri         *GitRef
	// Directories are counted in place instead of a git checkout.
	Directories []string
	// ExtraClocArgs are appended to every cloc invocation for the project.
	ExtraClocArgs []string
	Extra         ExtraColumns
	// Commented keeps the project out of the totals and comments out its
	// table row.
	Commented bool
	// NoCheriChanges marks diffs whose changes are unrelated to CHERI.
	NoCheriChanges bool
}

// Kind reports how the project is counted.
func (p *Project) Kind() ProjectKind {
	switch {
	case len(p.Directories) > 0:
		return KindDirectories
	case p.Cheri != nil:
		return KindDiff
	default:
		return KindUnmodified
	}
}

// DisplayName returns the name used in rendered tables.
func (p *Project) DisplayName() string {
	if p.LatexName != "" {
		return p.LatexName
	}
	return p.Name
}

// NoCheriSpecificChanges reports whether the project's changes are
// excluded from the CHERI change totals. Single-revision and directory
// counts never contribute changes.
func (p *Project) NoCheriSpecificChanges() bool {
	if p.Kind() != KindDiff {
		return true
	}
	return p.NoCheriChanges
}

// CoverageTargets returns the cheribuild target names the project
// accounts for.
func (p *Project) CoverageTargets() []string {
	if p.Kind() == KindDirectories {
		targets := make([]string, 0, len(p.Directories))
		for _, dir := range p.Directories {
			targets = append(targets, path.Base(dir))
		}
		return targets
	}
	return []string{path.Base(p.RepoSubdir)}
}

// Validate checks that the project definition is complete and matches
// exactly one counting shape.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if p.Extra.OverrideText != "" {
		x := p.Extra
		if x.Efficiency.Known || x.Offset.Known || x.PtrCmp.Known || x.Cherish.Known || x.Other.Known || x.Notes != "" {
			return fmt.Errorf("%w: %s: override text replaces the assessment cells", ErrInvalidProject, p.Name)
		}
	}
	if len(p.Directories) > 0 {
		if p.RepoSubdir != "" {
			return fmt.Errorf("%w: %s: directories and repo are mutually exclusive", ErrInvalidProject, p.Name)
		}
		if p.Baseline != nil || p.Cheri != nil {
			return fmt.Errorf("%w: %s: a directory count cannot pin git refs", ErrInvalidProject, p.Name)
		}
		return nil
	}
	if p.BaseDirectory != "" {
		return fmt.Errorf("%w: %s: base-directory only applies to directory counts", ErrInvalidProject, p.Name)
	}
	if p.RepoSubdir == "" {
		return fmt.Errorf("%w: %s: repo is required", ErrInvalidProject, p.Name)
	}
	if err := validateRef(p.Name, "baseline", p.Baseline); err != nil {
		return err
	}
	if p.Cheri != nil {
		if err := validateRef(p.Name, "cheri", p.Cheri); err != nil {
			return err
		}
	}
	return nil
}

func validateRef(project, role string, ref *GitRef) error {
	if ref == nil {
		return fmt.Errorf("%w: %s: %s ref is required", ErrInvalidProject, project, role)
	}
	if ref.Branch == "" || ref.Hash == "" {
		return fmt.Errorf("%w: %s: %s ref needs a branch and a hash", ErrInvalidProject, project, role)
	}
	return nil
}
