// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/cloc"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/config"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/gitref"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/logging"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/reportstore"
	"github.com/ctsrd-cheri/cheriloc/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Runner domain.ClocRunner
	Refs   domain.RefResolver
	Store  domain.ReportStore

	// Pointer fields
	Logger *slog.Logger

	// Configuration, merged from the config files over the defaults.
	Config *domain.Config
}

// New creates a new Container for the given working directory. The
// configuration is loaded from the global config directory and the
// working directory's cheriloc.toml; load warnings are carried in
// Config.Warnings for the CLI to surface.
func New(workDir string) (*Container, error) {
	cfg, err := config.NewLoader(workDir).Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level))
	return &Container{
		Runner: cloc.NewRunner(cfg.Cloc.Path, logger),
		Refs:   gitref.NewResolver(),
		Store:  reportstore.New(cfg.Paths.ReportsDir),
		Logger: logger,
		Config: cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, runner domain.ClocRunner, refs domain.RefResolver, store domain.ReportStore, logger *slog.Logger) *Container {
	return &Container{
		Runner: runner,
		Refs:   refs,
		Store:  store,
		Logger: logger,
		Config: cfg,
	}
}

// SetClocPath overrides the configured cloc executable.
func (c *Container) SetClocPath(path string) {
	c.Config.Cloc.Path = path
	c.Runner = cloc.NewRunner(path, c.Logger)
}

// SetSourceRoot overrides the configured source root.
func (c *Container) SetSourceRoot(root string) {
	c.Config.Paths.SourceRoot = root
}

// UseCase factory methods

// CountBenchmarksUseCase returns a new CountBenchmarks use case.
// stdout and stderr are the writers cloc's output streams into.
func (c *Container) CountBenchmarksUseCase(stdout, stderr io.Writer) *usecase.CountBenchmarks {
	return usecase.NewCountBenchmarks(c.Runner, stdout, stderr)
}

// ComputeChangesUseCase returns a new ComputeChanges use case.
func (c *Container) ComputeChangesUseCase(stdout, stderr io.Writer) *usecase.ComputeChanges {
	return usecase.NewComputeChanges(c.Runner, c.Refs, c.Store, c.Config.Cloc, c.Logger, stdout, stderr)
}

// TopFilesUseCase returns a new TopFiles use case.
func (c *Container) TopFilesUseCase() *usecase.TopFiles {
	return usecase.NewTopFiles(c.Store)
}

// ListProjectsUseCase returns a new ListProjects use case.
func (c *Container) ListProjectsUseCase() *usecase.ListProjects {
	return usecase.NewListProjects()
}
