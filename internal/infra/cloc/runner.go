// Package cloc runs the cloc tool as a subprocess.
package cloc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// Runner executes cloc invocations.
type Runner struct {
	clocPath string
	logger   *slog.Logger
}

// NewRunner creates a runner for the given cloc executable.
func NewRunner(clocPath string, logger *slog.Logger) *Runner {
	return &Runner{clocPath: clocPath, logger: logger}
}

// Ensure Runner implements domain.ClocRunner interface.
var _ domain.ClocRunner = (*Runner)(nil)

// Run executes cloc with the invocation's arguments. The working
// directory is set on the command itself, so the process working
// directory of the caller never changes. A nonzero exit status comes
// back as *domain.ExitError.
func (r *Runner) Run(ctx context.Context, inv domain.ClocInvocation, stdout, stderr io.Writer) error {
	// #nosec G204 - the cloc path comes from trusted configuration
	cmd := exec.CommandContext(ctx, r.clocPath, inv.Args()...)
	cmd.Dir = inv.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if inv.PreferGNUTar {
		env, cleanup, err := r.gnuTarEnv()
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer cleanup()
		}
		cmd.Env = env
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &domain.ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("run cloc: %w", err)
	}
	return nil
}

// gnuTarEnv builds an environment whose PATH resolves tar to GNU tar.
// cloc's --count-and-diff mode shells out to "tar", and BSD tar chokes
// on some of the archives git produces. Returns a nil environment when
// gtar is not installed.
func (r *Runner) gnuTarEnv() ([]string, func(), error) {
	gtar, err := exec.LookPath("gtar")
	if err != nil {
		return nil, nil, nil
	}
	if r.logger != nil {
		r.logger.Debug("resolving tar to gnu tar for diff run", "gtar", gtar)
	}
	dir, err := os.MkdirTemp("", "cheriloc-gtar-")
	if err != nil {
		return nil, nil, fmt.Errorf("create tar override dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	if err := os.Symlink(gtar, filepath.Join(dir, "tar")); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("link gnu tar: %w", err)
	}
	env := append(os.Environ(), "PATH="+dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return env, cleanup, nil
}
