// Package registry holds the built-in sets of projects whose CHERI
// changes are tracked.
package registry

import (
	"fmt"
	"sort"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// DefaultSetName is the project set analyzed when no set is named.
const DefaultSetName = "dsbd"

// Set is a named collection of projects analyzed together.
type Set struct {
	Name     string
	Projects []*domain.Project
	// Coverage lists the cheribuild targets the set must account for.
	// An empty list disables the coverage check.
	Coverage []string
	// CoverageIgnore names targets deliberately left out of the set.
	CoverageIgnore []string
}

var sets = map[string]*Set{
	"thesis": thesisSet(),
	"dsbd":   dsbdSet(),
}

// Get returns the built-in set registered under name.
func Get(name string) (*Set, error) {
	s, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSetNotFound, name)
	}
	return s, nil
}

// Names returns the built-in set names, sorted.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ref(branch, hash string) *domain.GitRef {
	return &domain.GitRef{Branch: branch, Hash: hash}
}

func qualitative(efficiency, offset, ptrcmp, cherish, other domain.Mark, notes string) domain.ExtraColumns {
	return domain.ExtraColumns{
		Efficiency: efficiency,
		Offset:     offset,
		PtrCmp:     ptrcmp,
		Cherish:    cherish,
		Other:      other,
		Notes:      notes,
	}
}

// Shorthands for the qualitative table cells.
var (
	yes     = domain.MarkYes()
	no      = domain.MarkNo()
	unknown = domain.Mark{}
)
