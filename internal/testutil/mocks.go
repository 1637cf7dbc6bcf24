// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// MockClocRunner is a test double for domain.ClocRunner.
type MockClocRunner struct {
	Invocations []domain.ClocInvocation
	RunErr      error
	// RunFunc, when set, runs after the invocation is recorded. Tests
	// use it to write the report files cloc would have produced.
	RunFunc func(inv domain.ClocInvocation, stdout, stderr io.Writer) error
}

// NewMockClocRunner creates a new MockClocRunner.
func NewMockClocRunner() *MockClocRunner {
	return &MockClocRunner{}
}

// Run records the invocation.
func (m *MockClocRunner) Run(_ context.Context, inv domain.ClocInvocation, stdout, stderr io.Writer) error {
	m.Invocations = append(m.Invocations, inv)
	if m.RunFunc != nil {
		return m.RunFunc(inv, stdout, stderr)
	}
	return m.RunErr
}

// MockRefResolver is a test double for domain.RefResolver.
type MockRefResolver struct {
	Hashes     map[string]string
	Calls      []string
	ResolveErr error
}

// NewMockRefResolver creates a new MockRefResolver with initialized maps.
func NewMockRefResolver() *MockRefResolver {
	return &MockRefResolver{Hashes: make(map[string]string)}
}

// SetHash configures the hash a revision resolves to in a repository.
func (m *MockRefResolver) SetHash(repoDir, revision, hash string) {
	m.Hashes[repoDir+"@"+revision] = hash
}

// Resolve returns the configured hash.
func (m *MockRefResolver) Resolve(repoDir, revision string) (string, error) {
	m.Calls = append(m.Calls, repoDir+"@"+revision)
	if m.ResolveErr != nil {
		return "", m.ResolveErr
	}
	if hash, ok := m.Hashes[repoDir+"@"+revision]; ok {
		return hash, nil
	}
	return "", fmt.Errorf("no hash configured for %s in %s", revision, repoDir)
}
