package reportstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

const countJSON = `{
"SUM": {"blank": 10, "comment": 20, "code": 1000, "nFiles": 5},
"header": {"cloc_version": "1.90"},
"C": {"blank": 8, "comment": 15, "code": 900, "nFiles": 4},
"C/C++ Header": {"blank": 2, "comment": 5, "code": 100, "nFiles": 1}
}`

const diffJSON = `{
"header": {"cloc_version": "1.90"},
"added": {"C": {"blank": 1, "comment": 2, "code": 120, "nFiles": 4}},
"removed": {"C": {"blank": 0, "comment": 1, "code": 30, "nFiles": 1}},
"modified": {"C": {"blank": 3, "comment": 4, "code": 850, "nFiles": 40}},
"same": {"C": {"blank": 100, "comment": 200, "code": 131000, "nFiles": 300}},
"SUM": {
"added": {"blank": 1, "comment": 2, "code": 120, "nFiles": 4},
"removed": {"blank": 0, "comment": 1, "code": 30, "nFiles": 1},
"modified": {"blank": 3, "comment": 4, "code": 850, "nFiles": 40},
"same": {"blank": 100, "comment": 200, "code": 131000, "nFiles": 300}
}
}`

func TestReportFileNames(t *testing.T) {
	store := New("/reports")

	assert.Equal(t, filepath.Join("/reports", "NGINX.report"), store.OutBase("NGINX"))
	assert.Equal(t, filepath.Join("/reports", "NGINX.report.abc.json"), store.CountFile("NGINX", "abc"))
	assert.Equal(t, filepath.Join("/reports", "NGINX.report.diff.abc.def.json"), store.DiffFile("NGINX", "abc", "def"))
}

func TestDirectoriesFile(t *testing.T) {
	// Setup
	store := New("/reports")

	// Execute
	name := store.DirectoriesFile("x11", []string{"b", "a"})

	// Assert
	assert.Equal(t, filepath.Join("/reports", "x11.report.da23614e02469a0d7c7bd1bdab5c9c474b1904dc.json"), name)
	assert.Equal(t, name, store.DirectoriesFile("x11", []string{"a", "b"}), "order must not change the cache name")
	assert.NotEqual(t, name, store.DirectoriesFile("x11", []string{"a", "c"}))
}

func TestEnsureDir(t *testing.T) {
	// Setup
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	store := New(dir)

	// Execute
	err := store.EnsureDir()

	// Assert
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestLoadCountNormalizesRawReport(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)
	base := store.OutBase("NGINX")
	rawPath := base + ".abc"
	require.NoError(t, os.WriteFile(rawPath, []byte(countJSON), 0o644))

	// Execute
	report, err := store.LoadCount(base, ".abc")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.ClocSummary{Blank: 10, Comment: 20, Code: 1000, Files: 5}, report.Sum)
	assert.Equal(t, map[string]int{"C": 900}, report.Languages)

	assert.NoFileExists(t, rawPath, "raw report is replaced by the normalized copy")
	content, err := os.ReadFile(base + ".abc.json")
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.Index(text, `"C"`) < strings.Index(text, `"SUM"`), "keys are sorted")
	assert.True(t, strings.Index(text, `"SUM"`) < strings.Index(text, `"header"`), "keys are sorted")
}

func TestLoadCountReadsNormalizedReport(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)
	base := store.OutBase("NGINX")
	require.NoError(t, os.WriteFile(base+".abc.json", []byte(countJSON), 0o644))

	// Execute
	report, err := store.LoadCount(base, ".abc")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1000, report.Sum.Code)
}

func TestLoadCountWithoutSuffix(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)
	path := store.DirectoriesFile("x11", []string{"xev"})
	require.NoError(t, os.WriteFile(path, []byte(countJSON), 0o644))

	// Execute
	report, err := store.LoadCount(path, "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, report.Sum.Files)
	assert.FileExists(t, path)
}

func TestLoadCountMissingReport(t *testing.T) {
	// Setup
	store := New(t.TempDir())

	// Execute
	_, err := store.LoadCount(store.OutBase("NGINX"), ".abc")

	// Assert
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestLoadCountMissingSum(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)
	base := store.OutBase("NGINX")
	require.NoError(t, os.WriteFile(base+".abc", []byte(`{"header": {}}`), 0o644))

	// Execute
	_, err := store.LoadCount(base, ".abc")

	// Assert
	assert.ErrorIs(t, err, domain.ErrMissingSum)
}

func TestLoadDiff(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)
	base := store.OutBase("NGINX")
	require.NoError(t, os.WriteFile(base+".diff.abc.def", []byte(diffJSON), 0o644))

	// Execute
	report, err := store.LoadDiff(base, ".diff.abc.def")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 120, report.Sum.Added.Code)
	assert.Equal(t, 30, report.Sum.Removed.Code)
	assert.Equal(t, 850, report.Sum.Modified.Code)
	assert.Equal(t, 40, report.Sum.Modified.Files)
	assert.Equal(t, 131000, report.Same["C"].Code)
	assert.FileExists(t, base+".diff.abc.def.json")
}

func TestLoadDiffMissingReportIsOptional(t *testing.T) {
	// Setup
	store := New(t.TempDir())

	// Execute
	report, err := store.LoadDiff(store.OutBase("NGINX"), ".diff.abc.def")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestReadDiffDoesNotRewrite(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)
	path := filepath.Join(dir, "kernel.diff.json")
	require.NoError(t, os.WriteFile(path, []byte(diffJSON), 0o644))

	// Execute
	report, err := store.ReadDiff(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 850, report.Sum.Modified.Code)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, diffJSON, string(content), "report is read in place")
}

func TestReadDiffMissingFile(t *testing.T) {
	// Setup
	store := New(t.TempDir())

	// Execute
	_, err := store.ReadDiff(filepath.Join(t.TempDir(), "missing.json"))

	// Assert
	assert.Error(t, err)
}
