// Package reportstore caches cloc JSON reports on disk.
//
// cloc names its outputs after the --out base without an extension.
// The store rewrites every report it reads as sorted, indented JSON
// under the same name plus ".json" and removes the raw file, so the
// cached reports diff cleanly between runs.
package reportstore

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // cache key for report file names, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// Store keeps the cloc reports for one project set in a single
// directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Ensure Store implements domain.ReportStore interface.
var _ domain.ReportStore = (*Store)(nil)

// Dir returns the report directory.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the report directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	return nil
}

// OutBase returns the --out base path for a project's diff run.
func (s *Store) OutBase(project string) string {
	return filepath.Join(s.dir, project+".report")
}

// CountFile returns the final path of a single-revision count report.
func (s *Store) CountFile(project, hash string) string {
	return s.OutBase(project) + "." + hash + ".json"
}

// DiffFile returns the final path of a normalized diff report.
func (s *Store) DiffFile(project, baseHash, cheriHash string) string {
	return s.OutBase(project) + ".diff." + baseHash + "." + cheriHash + ".json"
}

// DirectoriesFile returns the final path of a directory-set count
// report. The name encodes the directory list so that changing the set
// invalidates the cache.
func (s *Store) DirectoriesFile(project string, dirs []string) string {
	sorted := append([]string(nil), dirs...)
	sort.Strings(sorted)
	sum := sha1.Sum([]byte(strings.Join(sorted, ""))) //nolint:gosec // cache key, not security
	return s.OutBase(project) + "." + hex.EncodeToString(sum[:]) + ".json"
}

// Exists reports whether path exists.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadCount parses the count report written under base+suffix and
// rewrites it normalized. An empty suffix means base already is the
// final report path.
func (s *Store) LoadCount(base, suffix string) (*domain.CountReport, error) {
	content, err := s.normalize(base, suffix, false)
	if err != nil || content == nil {
		return nil, err
	}
	return parseCount(content)
}

// LoadDiff parses the diff report written under base+suffix and
// rewrites it normalized. A missing report returns nil without error;
// cloc omits the diff file when nothing changed.
func (s *Store) LoadDiff(base, suffix string) (*domain.DiffReport, error) {
	content, err := s.normalize(base, suffix, true)
	if err != nil || content == nil {
		return nil, err
	}
	return parseDiff(content)
}

// ReadDiff parses an existing diff report without rewriting it.
func (s *Store) ReadDiff(path string) (*domain.DiffReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return parseDiff(content)
}

// normalize reads the report under base+suffix, rewrites it sorted and
// indented under base+suffix+".json", and removes the raw file. When
// only the normalized copy exists it is read and rewritten in place.
func (s *Store) normalize(base, suffix string, optional bool) ([]byte, error) {
	rawPath := base + suffix
	finalPath := rawPath
	if suffix != "" {
		finalPath = rawPath + ".json"
	}
	path := rawPath
	if !s.Exists(rawPath) && s.Exists(finalPath) {
		path = finalPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if optional {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, path)
		}
		return nil, fmt.Errorf("read report: %w", err)
	}

	normalized, err := normalizeJSON(content)
	if err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	if err := writeAtomic(finalPath, normalized); err != nil {
		return nil, err
	}
	if path != finalPath {
		_ = os.Remove(path)
	}
	return normalized, nil
}

func normalizeJSON(content []byte) ([]byte, error) {
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, content []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil { //nolint:gosec // shared report cache
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func parseCount(content []byte) (*domain.CountReport, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("parse count report: %w", err)
	}
	sumRaw, ok := entries["SUM"]
	if !ok {
		return nil, domain.ErrMissingSum
	}
	var sum domain.ClocSummary
	if err := json.Unmarshal(sumRaw, &sum); err != nil {
		return nil, fmt.Errorf("parse SUM entry: %w", err)
	}
	report := &domain.CountReport{Languages: make(map[string]int), Sum: sum}
	for _, lang := range domain.CountedLanguages {
		raw, ok := entries[lang]
		if !ok {
			continue
		}
		var summary domain.ClocSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			return nil, fmt.Errorf("parse %s entry: %w", lang, err)
		}
		report.Languages[lang] = summary.Code
	}
	return report, nil
}

// parseDiff decodes a --count-and-diff report. The buckets are keyed
// by language, or by file when cloc ran with --by-file.
func parseDiff(content []byte) (*domain.DiffReport, error) {
	var raw struct {
		Added    map[string]domain.ClocSummary `json:"added"`
		Removed  map[string]domain.ClocSummary `json:"removed"`
		Modified map[string]domain.ClocSummary `json:"modified"`
		Same     map[string]domain.ClocSummary `json:"same"`
		Sum      *domain.ClocDiff              `json:"SUM"`
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse diff report: %w", err)
	}
	if raw.Sum == nil {
		return nil, domain.ErrMissingSum
	}
	return &domain.DiffReport{
		Added:    raw.Added,
		Removed:  raw.Removed,
		Modified: raw.Modified,
		Same:     raw.Same,
		Sum:      *raw.Sum,
	}, nil
}
