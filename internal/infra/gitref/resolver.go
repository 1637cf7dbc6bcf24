// Package gitref resolves revisions in the measured checkouts.
package gitref

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// Resolver looks up commit hashes in local git checkouts.
type Resolver struct{}

// NewResolver creates a revision resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Ensure Resolver implements domain.RefResolver interface.
var _ domain.RefResolver = (*Resolver)(nil)

// Resolve returns the commit hash a revision points at in the checkout
// at repoDir. Branches, remote branches, and tags all resolve the way
// git rev-parse would.
func (r *Resolver) Resolve(repoDir, revision string) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open git repository %s: %w", repoDir, err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", fmt.Errorf("resolve %s in %s: %w", revision, repoDir, err)
	}
	return hash.String(), nil
}
