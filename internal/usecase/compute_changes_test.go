package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/logging"
	"github.com/ctsrd-cheri/cheriloc/internal/infra/reportstore"
	"github.com/ctsrd-cheri/cheriloc/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countReportJSON(lang string, code, files int) string {
	return fmt.Sprintf(`{
  "header": {"cloc_url": "github.com/AlDanial/cloc", "cloc_version": "1.90"},
  %q: {"blank": 10, "comment": 20, "code": %d, "nFiles": %d},
  "SUM": {"blank": 10, "comment": 20, "code": %d, "nFiles": %d}
}`, lang, code, files, code, files)
}

const diffReportJSON = `{
  "header": {"cloc_version": "1.90"},
  "added": {"C": {"blank": 1, "comment": 2, "code": 120, "nFiles": 3}},
  "removed": {"C": {"blank": 1, "comment": 0, "code": 30, "nFiles": 1}},
  "modified": {"C": {"blank": 5, "comment": 5, "code": 850, "nFiles": 40}},
  "same": {"C": {"blank": 100, "comment": 50, "code": 131009, "nFiles": 290}},
  "SUM": {
    "added": {"blank": 1, "comment": 2, "code": 120, "nFiles": 3},
    "removed": {"blank": 1, "comment": 0, "code": 30, "nFiles": 1},
    "modified": {"blank": 5, "comment": 5, "code": 850, "nFiles": 40},
    "same": {"blank": 100, "comment": 50, "code": 131009, "nFiles": 290}
  }
}`

func writeReport(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func testClocConfig() domain.ClocConfig {
	return domain.ClocConfig{Path: "cloc", Processes: 4, DiffTimeoutSecs: 300}
}

func diffProject(name string) *domain.Project {
	return &domain.Project{
		Name:       name,
		RepoSubdir: "nginx",
		Baseline:   &domain.GitRef{Branch: "baseline", Hash: "aaa111"},
		Cheri:      &domain.GitRef{Branch: "cheri", Hash: "bbb222"},
	}
}

func TestComputeChanges_Execute_DiffProject(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	repoDir := filepath.Join(sourceRoot, "nginx")
	require.NoError(t, os.Mkdir(repoDir, 0o750))
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	runner := testutil.NewMockClocRunner()
	runner.RunFunc = func(inv domain.ClocInvocation, _, _ io.Writer) error {
		// cloc derives the per-revision and diff report names from --out.
		writeReport(t, inv.OutFile+"."+inv.DiffBase, countReportJSON("C", 132009, 334))
		writeReport(t, inv.OutFile+"."+inv.DiffHead, countReportJSON("C", 132700, 335))
		writeReport(t, inv.OutFile+".diff."+inv.DiffBase+"."+inv.DiffHead, diffReportJSON)
		return nil
	}
	refs := testutil.NewMockRefResolver()
	refs.SetHash(repoDir, "baseline", "aaa111")
	refs.SetHash(repoDir, "cheri", "bbb222")
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	out, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{diffProject("NGINX")},
		SourceRoot: sourceRoot,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, out.Reports, 1)
	r := out.Reports[0]
	assert.Equal(t, 1000, r.ChangedLOC())
	assert.Equal(t, 40, r.ChangedFiles())

	require.Len(t, runner.Invocations, 1)
	inv := runner.Invocations[0]
	assert.Equal(t, repoDir, inv.Dir)
	args := inv.Args()
	assert.Contains(t, args, "--skip-uniqueness")
	assert.Contains(t, args, "--count-and-diff")
	assert.Contains(t, args, "aaa111")
	assert.Contains(t, args, "bbb222")

	output := stdout.String()
	assert.Contains(t, output, "Running:  cloc '--include-lang=C,C++,C/C++ Header,Assembly'")
	assert.Contains(t, output, "-------  NGINX --------------")
	assert.Contains(t, output, "Languages           100.00% C")
	assert.Contains(t, output, "TOTAL SLOC          132,009")
	assert.Contains(t, output, "SLOC CHANGED        1,000")
	assert.Contains(t, output, "FILES CHANGED       40")
	assert.Contains(t, output, "------- SUMMARY --------------")
	assert.Contains(t, output, "TOTAL SLOC            132,009")
	assert.Contains(t, output, "SLOC CHANGED (CHERI)    1,000")
	assert.Contains(t, output, "SLOC CHANGED (CHERI, C)    1,000")
	assert.Empty(t, stderr.String())

	assert.Contains(t, out.TableRows, "NGINX")
	assert.Contains(t, out.Table, `\label{tab:cheri-compat-changes}`)
	assert.Contains(t, out.Macros, `\newcommand*{\TotalSlocNGINX}{132009}`)
	assert.Contains(t, out.Macros, `\newcommand*{\ChangedSlocNGINX}{1000}`)
	assert.Contains(t, out.Macros, `\newcommand*{\ChangedSlocMaxProject}{NGINX}`)
}

func TestComputeChanges_Execute_SkipsCachedDiff(t *testing.T) {
	// Setup - normalized reports already on disk
	sourceRoot := t.TempDir()
	repoDir := filepath.Join(sourceRoot, "nginx")
	require.NoError(t, os.Mkdir(repoDir, 0o750))
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	writeReport(t, store.CountFile("NGINX", "aaa111"), countReportJSON("C", 132009, 334))
	writeReport(t, store.CountFile("NGINX", "bbb222"), countReportJSON("C", 132700, 335))
	writeReport(t, store.DiffFile("NGINX", "aaa111", "bbb222"), diffReportJSON)
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	refs.SetHash(repoDir, "baseline", "aaa111")
	refs.SetHash(repoDir, "cheri", "bbb222")
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	out, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{diffProject("NGINX")},
		SourceRoot: sourceRoot,
	})

	// Assert - cloc did not run, the cached reports were used
	require.NoError(t, err)
	assert.Empty(t, runner.Invocations)
	output := stdout.String()
	assert.Contains(t, output, "CLOC report found, not re-running analysis for  NGINX")
	assert.Contains(t, output, "Not running:  cloc")
	assert.Contains(t, output, "Delete "+store.DiffFile("NGINX", "aaa111", "bbb222")+" to force new analysis run")
	assert.Equal(t, 1000, out.Reports[0].ChangedLOC())
}

func TestComputeChanges_Execute_UnmodifiedProject(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	repoDir := filepath.Join(sourceRoot, "libxml2")
	require.NoError(t, os.Mkdir(repoDir, 0o750))
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	runner := testutil.NewMockClocRunner()
	runner.RunFunc = func(inv domain.ClocInvocation, _, _ io.Writer) error {
		writeReport(t, inv.OutFile, countReportJSON("C", 231071, 184))
		return nil
	}
	refs := testutil.NewMockRefResolver()
	refs.SetHash(repoDir, "master", "ccc333")
	project := &domain.Project{
		Name:       "libxml2",
		RepoSubdir: "libxml2",
		Baseline:   &domain.GitRef{Branch: "master", Hash: "ccc333"},
	}
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	out, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{project},
		SourceRoot: sourceRoot,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, runner.Invocations, 1)
	inv := runner.Invocations[0]
	assert.Equal(t, store.CountFile("libxml2", "ccc333"), inv.OutFile)
	args := inv.Args()
	assert.Contains(t, args, "--git")
	assert.Contains(t, args, "ccc333")
	assert.NotContains(t, args, "--count-and-diff")
	assert.NotContains(t, args, "--skip-uniqueness")

	r := out.Reports[0]
	assert.Zero(t, r.ChangedLOC())
	assert.True(t, r.Project.NoCheriSpecificChanges())
	output := stdout.String()
	assert.Contains(t, output, "-------  libxml2 --------------")
	assert.Contains(t, output, "TOTAL SLOC   (no CHERI)    231,071")
	assert.Contains(t, output, "SLOC CHANGED (CHERI)    0")
}

func TestComputeChanges_Execute_UnknownMainLanguage(t *testing.T) {
	// Setup - the cached report counts none of the tracked languages
	sourceRoot := t.TempDir()
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	project := &domain.Project{Name: "scripts", Directories: []string{"scripts"}}
	writeReport(t, store.DirectoriesFile("scripts", project.Directories), countReportJSON("Python", 100, 1))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{project},
		SourceRoot: sourceRoot,
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrUnknownLanguage)
	assert.Contains(t, err.Error(), "scripts")
}

func TestComputeChanges_Execute_DirectoriesProject(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	runner := testutil.NewMockClocRunner()
	runner.RunFunc = func(inv domain.ClocInvocation, _, _ io.Writer) error {
		writeReport(t, inv.OutFile, countReportJSON("C", 5000, 10))
		return nil
	}
	refs := testutil.NewMockRefResolver()
	project := &domain.Project{
		Name:          "x11 libraries",
		BaseDirectory: "qt5",
		Directories:   []string{"libx11", "libxext"},
	}
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	out, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{project},
		SourceRoot: sourceRoot,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, runner.Invocations, 1)
	inv := runner.Invocations[0]
	assert.Equal(t, filepath.Join(sourceRoot, "qt5"), inv.Dir)
	assert.Equal(t, store.DirectoriesFile("x11 libraries", project.Directories), inv.OutFile)
	args := inv.Args()
	assert.Equal(t, []string{"libx11", "libxext"}, args[len(args)-2:])
	assert.NotContains(t, args, "--git")
	assert.Empty(t, refs.Calls)

	assert.Contains(t, stdout.String(), "-------  x11 libraries --------------")
	assert.Equal(t, 5000, out.Reports[0].Baseline.Sum.Code)
}

func TestComputeChanges_Execute_WarnsOncePerMovedBranch(t *testing.T) {
	// Setup - two projects pin the same moved branch
	sourceRoot := t.TempDir()
	repoDir := filepath.Join(sourceRoot, "nginx")
	require.NoError(t, os.Mkdir(repoDir, 0o750))
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	writeReport(t, store.CountFile("first", "pinned1"), countReportJSON("C", 100, 1))
	writeReport(t, store.CountFile("second", "pinned1"), countReportJSON("C", 200, 2))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	refs.SetHash(repoDir, "main", "moved99")
	pinned := &domain.GitRef{Branch: "main", Hash: "pinned1"}
	projects := []*domain.Project{
		{Name: "first", RepoSubdir: "nginx", Baseline: pinned},
		{Name: "second", RepoSubdir: "nginx", Baseline: pinned},
	}
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   projects,
		SourceRoot: sourceRoot,
	})

	// Assert - one warning, pinned hash still used for the report files
	require.NoError(t, err)
	warning := "BRANCH HASH moved99 FOR main DOES NOT MATCH EXPECTED VALUE (updates since last check?) pinned1\n"
	assert.Contains(t, stderr.String(), warning)
	assert.Equal(t, 1, strings.Count(stderr.String(), "DOES NOT MATCH"))
	assert.Len(t, refs.Calls, 1)
	assert.Empty(t, runner.Invocations)
}

func TestComputeChanges_Execute_MissingCheckout(t *testing.T) {
	// Setup
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{diffProject("NGINX")},
		SourceRoot: t.TempDir(),
	})

	// Assert - nothing runs and no refs are resolved
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkout not found")
	assert.Empty(t, runner.Invocations)
	assert.Empty(t, refs.Calls)
}

func TestComputeChanges_Execute_ClocFailure(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	repoDir := filepath.Join(sourceRoot, "nginx")
	require.NoError(t, os.Mkdir(repoDir, 0o750))
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	runner := testutil.NewMockClocRunner()
	runner.RunErr = &domain.ExitError{Code: 2}
	refs := testutil.NewMockRefResolver()
	refs.SetHash(repoDir, "baseline", "aaa111")
	refs.SetHash(repoDir, "cheri", "bbb222")
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{diffProject("NGINX")},
		SourceRoot: sourceRoot,
	})

	// Assert - the failure names the project; the raw exit error is not
	// propagated, unlike the benchmark count
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cloc failed for NGINX: exit status 2")
	var exitErr *domain.ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestComputeChanges_Execute_CoverageMissingTargets(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	project := &domain.Project{Name: "nginx count", Directories: []string{"nginx"}}
	writeReport(t, store.DirectoriesFile("nginx count", project.Directories), countReportJSON("C", 100, 1))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:       []*domain.Project{project},
		Coverage:       []string{"nginx", "qtbase", "sqlite"},
		CoverageIgnore: []string{"sqlite"},
		SourceRoot:     sourceRoot,
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrTargetsNotCovered)
	assert.Contains(t, stdout.String(), "Did not include: [qtbase]")
}

func TestComputeChanges_Execute_CoverageUnknownTarget(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	project := &domain.Project{Name: "nginx count", Directories: []string{"nginx"}}
	writeReport(t, store.DirectoriesFile("nginx count", project.Directories), countReportJSON("C", 100, 1))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{project},
		Coverage:   []string{"qtbase"},
		SourceRoot: sourceRoot,
	})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in cheribuild targets: nginx")
}

func TestComputeChanges_Execute_DuplicateDisplayName(t *testing.T) {
	// Setup - distinct projects rendered under the same table name
	sourceRoot := t.TempDir()
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	first := &domain.Project{Name: "x11 pt1", LatexName: "X11", Directories: []string{"libx11"}}
	second := &domain.Project{Name: "x11 pt2", LatexName: "X11", Directories: []string{"libxext"}}
	writeReport(t, store.DirectoriesFile("x11 pt1", first.Directories), countReportJSON("C", 100, 1))
	writeReport(t, store.DirectoriesFile("x11 pt2", second.Directories), countReportJSON("C", 200, 2))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{first, second},
		SourceRoot: sourceRoot,
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrDuplicateTableName)
	assert.Contains(t, err.Error(), "X11")
}

func TestComputeChanges_Execute_CommentedProjectExcludedFromTotals(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	visible := &domain.Project{Name: "visible", Directories: []string{"one"}}
	hidden := &domain.Project{Name: "hidden", Directories: []string{"two"}, Commented: true}
	writeReport(t, store.DirectoriesFile("visible", visible.Directories), countReportJSON("C", 5000, 10))
	writeReport(t, store.DirectoriesFile("hidden", hidden.Directories), countReportJSON("C", 8000, 20))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	out, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{visible, hidden},
		SourceRoot: sourceRoot,
	})

	// Assert - both print a block, only the visible one counts
	require.NoError(t, err)
	output := stdout.String()
	assert.Contains(t, output, "-------  visible --------------")
	assert.Contains(t, output, "-------  hidden --------------")
	assert.Contains(t, output, "TOTAL SLOC            5,000")
	assert.Contains(t, out.TableRows, "% hidden")
}

func TestComputeChanges_Execute_SortsReportsByLanguageThenChange(t *testing.T) {
	// Setup
	sourceRoot := t.TempDir()
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	cppProject := &domain.Project{Name: "alpha", Directories: []string{"alpha"}}
	cProject := &domain.Project{Name: "beta", Directories: []string{"beta"}}
	writeReport(t, store.DirectoriesFile("alpha", cppProject.Directories), countReportJSON("C++", 900, 9))
	writeReport(t, store.DirectoriesFile("beta", cProject.Directories), countReportJSON("C", 100, 1))
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), testLogger(), &stdout, &stderr)

	// Execute
	out, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{cppProject, cProject},
		SourceRoot: sourceRoot,
	})

	// Assert - C sorts before C++, ties on change keep that order
	require.NoError(t, err)
	require.Len(t, out.Reports, 2)
	assert.Equal(t, "beta", out.Reports[0].Project.Name)
	assert.Equal(t, "alpha", out.Reports[1].Project.Name)
	assert.Less(t, strings.Index(out.TableRows, "beta"), strings.Index(out.TableRows, "alpha"))
	assert.Contains(t, out.Macros, `\newcommand*{\ChangedSlocMaxProject}{beta}`)
}

func TestComputeChanges_Execute_DebugLogsRunDecisions(t *testing.T) {
	// Setup - one fully cached diff project and one fresh directories run
	sourceRoot := t.TempDir()
	repoDir := filepath.Join(sourceRoot, "nginx")
	require.NoError(t, os.Mkdir(repoDir, 0o750))
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	writeReport(t, store.CountFile("NGINX", "aaa111"), countReportJSON("C", 132009, 334))
	writeReport(t, store.CountFile("NGINX", "bbb222"), countReportJSON("C", 132700, 335))
	writeReport(t, store.DiffFile("NGINX", "aaa111", "bbb222"), diffReportJSON)
	fresh := &domain.Project{Name: "x11", Directories: []string{"libx11"}}
	runner := testutil.NewMockClocRunner()
	runner.RunFunc = func(inv domain.ClocInvocation, _, _ io.Writer) error {
		writeReport(t, inv.OutFile, countReportJSON("C", 5000, 10))
		return nil
	}
	refs := testutil.NewMockRefResolver()
	refs.SetHash(repoDir, "baseline", "aaa111")
	refs.SetHash(repoDir, "cheri", "bbb222")
	var logBuf bytes.Buffer
	logger := logging.New(&logBuf, slog.LevelDebug)
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), logger, &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{diffProject("NGINX"), fresh},
		SourceRoot: sourceRoot,
	})

	// Assert - the cache skip, the ref checks and the assembled command
	// all show up at debug level
	require.NoError(t, err)
	logs := logBuf.String()
	assert.Contains(t, logs, "skipping cloc run, report cached")
	assert.Contains(t, logs, "project=NGINX")
	assert.Contains(t, logs, "verified pinned ref")
	assert.Contains(t, logs, "branch=baseline")
	assert.Contains(t, logs, "branch=cheri")
	assert.Contains(t, logs, "running cloc")
	assert.Contains(t, logs, "project=x11")
	assert.Contains(t, logs, "--include-lang=C,C++,C/C++ Header,Assembly")
}

func TestComputeChanges_Execute_NoLogRecordsAtDefaultLevel(t *testing.T) {
	// Setup - same cached project, logger at the default info level
	sourceRoot := t.TempDir()
	repoDir := filepath.Join(sourceRoot, "nginx")
	require.NoError(t, os.Mkdir(repoDir, 0o750))
	store := reportstore.New(filepath.Join(t.TempDir(), "reports"))
	writeReport(t, store.CountFile("NGINX", "aaa111"), countReportJSON("C", 132009, 334))
	writeReport(t, store.CountFile("NGINX", "bbb222"), countReportJSON("C", 132700, 335))
	writeReport(t, store.DiffFile("NGINX", "aaa111", "bbb222"), diffReportJSON)
	runner := testutil.NewMockClocRunner()
	refs := testutil.NewMockRefResolver()
	refs.SetHash(repoDir, "baseline", "aaa111")
	refs.SetHash(repoDir, "cheri", "bbb222")
	var logBuf bytes.Buffer
	logger := logging.New(&logBuf, logging.ParseLevel(""))
	var stdout, stderr bytes.Buffer
	uc := NewComputeChanges(runner, refs, store, testClocConfig(), logger, &stdout, &stderr)

	// Execute
	_, err := uc.Execute(context.Background(), ComputeChangesInput{
		Projects:   []*domain.Project{diffProject("NGINX")},
		SourceRoot: sourceRoot,
	})

	// Assert - diagnostics stay on debug, stderr stays clean
	require.NoError(t, err)
	assert.Empty(t, logBuf.String())
	assert.Empty(t, stderr.String())
}
