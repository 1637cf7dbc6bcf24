package usecase

import (
	"context"
	"sort"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// DefaultTopFilesLimit is the number of files listed per bucket when no
// limit is given.
const DefaultTopFilesLimit = 15

// TopFilesInput contains the input parameters for TopFiles.
type TopFilesInput struct {
	Path        string // Path to a by-file diff report
	Limit       int    // Maximum files per bucket, 0 for all
	IncludeSame bool   // Also list the unchanged files
}

// FileEntry pairs a file name with its diff counts.
type FileEntry struct {
	Name   string
	Counts domain.ClocSummary
}

// TopFilesBucket lists the largest entries of one diff bucket.
type TopFilesBucket struct {
	Name    string
	Entries []FileEntry
}

// TopFilesOutput contains the per-bucket file listings.
type TopFilesOutput struct {
	Buckets []TopFilesBucket
}

// TopFiles lists the files with the most changed code in a by-file diff
// report. It reads reports produced by a `changes` run with --by-file in
// the project's extra cloc arguments.
type TopFiles struct {
	store domain.ReportStore
}

// NewTopFiles creates a new TopFiles use case.
func NewTopFiles(store domain.ReportStore) *TopFiles {
	return &TopFiles{store: store}
}

// Execute reads the report and returns the added, removed and modified
// buckets, each sorted by code count. The same bucket is included on
// request; it is large and usually noise.
func (uc *TopFiles) Execute(_ context.Context, in TopFilesInput) (*TopFilesOutput, error) {
	diff, err := uc.store.ReadDiff(in.Path)
	if err != nil {
		return nil, err
	}
	buckets := []TopFilesBucket{
		{Name: "ADDED", Entries: topEntries(diff.Added, in.Limit)},
		{Name: "REMOVED", Entries: topEntries(diff.Removed, in.Limit)},
		{Name: "MODIFIED", Entries: topEntries(diff.Modified, in.Limit)},
	}
	if in.IncludeSame {
		buckets = append(buckets, TopFilesBucket{Name: "SAME", Entries: topEntries(diff.Same, in.Limit)})
	}
	return &TopFilesOutput{Buckets: buckets}, nil
}

// topEntries sorts a bucket by code count, largest first, and keeps the
// first limit entries. Ties are broken by name to keep the listing stable.
func topEntries(bucket map[string]domain.ClocSummary, limit int) []FileEntry {
	entries := make([]FileEntry, 0, len(bucket))
	for name, counts := range bucket {
		entries = append(entries, FileEntry{Name: name, Counts: counts})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Counts.Code != entries[j].Counts.Code {
			return entries[i].Counts.Code > entries[j].Counts.Code
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
