package domain

import (
	"context"
	"io"
)

// ConfigLoader loads the application configuration.
type ConfigLoader interface {
	// Load returns the configuration merged from the global and local
	// config files over the defaults.
	Load() (*Config, error)
}

// ClocRunner executes the external cloc tool.
type ClocRunner interface {
	// Run executes cloc with the invocation's arguments, in the
	// invocation's working directory, streaming the tool's output to
	// stdout and stderr. A nonzero tool exit is returned as *ExitError.
	Run(ctx context.Context, inv ClocInvocation, stdout, stderr io.Writer) error
}

// RefResolver resolves git revisions to commit hashes.
type RefResolver interface {
	// Resolve returns the full commit hash of a revision in the
	// repository at repoDir.
	Resolve(repoDir, revision string) (string, error)
}

// ReportStore caches cloc JSON reports on disk.
type ReportStore interface {
	// EnsureDir creates the report directory if it does not exist.
	EnsureDir() error

	// OutBase returns the --out base path for a project's diff run.
	// cloc derives the per-revision and diff report names from it.
	OutBase(project string) string

	// CountFile returns the final path of a single-revision count report.
	CountFile(project, hash string) string

	// DiffFile returns the final path of a normalized diff report.
	DiffFile(project, baseHash, cheriHash string) string

	// DirectoriesFile returns the final path of a directory-set count
	// report. The name encodes the directory list so that changing the
	// set invalidates the cache.
	DirectoriesFile(project string, dirs []string) string

	// Exists reports whether path exists.
	Exists(path string) bool

	// LoadCount parses the count report written under base+suffix and
	// rewrites it normalized under base+suffix+".json". An empty suffix
	// means base already is the final report path.
	LoadCount(base, suffix string) (*CountReport, error)

	// LoadDiff parses the diff report written under base+suffix and
	// rewrites it normalized. A missing report returns nil without
	// error; cloc omits the diff file when nothing changed.
	LoadDiff(base, suffix string) (*DiffReport, error)

	// ReadDiff parses an existing diff report without rewriting it.
	ReadDiff(path string) (*DiffReport, error)
}
