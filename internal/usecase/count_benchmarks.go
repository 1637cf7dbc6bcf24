package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// CountBenchmarksInput contains the input parameters for CountBenchmarks.
type CountBenchmarksInput struct {
	SourceRoot string // Root directory holding the benchmark checkout
}

// CountBenchmarks counts the SPEC CPU2006 benchmark sources with cloc.
type CountBenchmarks struct {
	runner domain.ClocRunner
	stdout io.Writer
	stderr io.Writer
}

// NewCountBenchmarks creates a new CountBenchmarks use case.
func NewCountBenchmarks(runner domain.ClocRunner, stdout, stderr io.Writer) *CountBenchmarks {
	return &CountBenchmarks{runner: runner, stdout: stdout, stderr: stderr}
}

// Execute runs cloc over the benchmark directories, streaming the tool's
// output unchanged. cloc is never started when the benchmark tree is
// missing; a nonzero cloc exit comes back as *domain.ExitError so the
// caller can propagate the tool's status.
func (uc *CountBenchmarks) Execute(ctx context.Context, in CountBenchmarksInput) error {
	benchDir := filepath.Join(in.SourceRoot, domain.BenchmarkSubdir)
	info, err := os.Stat(benchDir)
	if err != nil {
		return fmt.Errorf("benchmark sources not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("benchmark sources not found: %s is not a directory", benchDir)
	}
	return uc.runner.Run(ctx, domain.NewBenchmarkInvocation(benchDir), uc.stdout, uc.stderr)
}
