package core

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/licenseguard/licenseguard/internal/types"
)

// ============================================================================
// StubResolver
// ============================================================================

// StubResolver implements LicenseResolver with a function field for testing.
type StubResolver struct {
	ResolveFunc func(ctx context.Context, dep types.Dependency) types.LicenseRecord

	mu           sync.Mutex
	ResolveCalls []types.Dependency
}

// Resolve implements LicenseResolver
func (s *StubResolver) Resolve(ctx context.Context, dep types.Dependency) types.LicenseRecord {
	s.mu.Lock()
	s.ResolveCalls = append(s.ResolveCalls, dep)
	s.mu.Unlock()

	if s.ResolveFunc != nil {
		return s.ResolveFunc(ctx, dep)
	}
	return types.LicenseRecord{
		Dependency: dep,
		Licenses:   []string{"MIT"},
		LicenseID:  "MIT",
	}
}

// CallCount returns the number of Resolve invocations (safe under concurrency).
func (s *StubResolver) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ResolveCalls)
}

// ============================================================================
// RecordingProgressTracker
// ============================================================================

// RecordingProgressTracker implements ProgressTracker and records all calls.
type RecordingProgressTracker struct {
	mu         sync.Mutex
	Increments []string
	Totals     []int
	Completed  bool
	Failed     error
}

// Increment implements ProgressTracker
func (r *RecordingProgressTracker) Increment(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Increments = append(r.Increments, message)
}

// SetTotal implements ProgressTracker
func (r *RecordingProgressTracker) SetTotal(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Totals = append(r.Totals, total)
}

// Complete implements ProgressTracker
func (r *RecordingProgressTracker) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Completed = true
}

// Fail implements ProgressTracker
func (r *RecordingProgressTracker) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed = err
}

// IncrementCount returns the number of Increment calls.
func (r *RecordingProgressTracker) IncrementCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Increments)
}

// ============================================================================
// Helper Functions
// ============================================================================

// testPolicy creates a policy with standard approved/restricted lists for testing
func testPolicy() types.Policy {
	return types.Policy{
		Approved:   []string{"MIT", "Apache-2.0", "BSD-3-Clause"},
		Restricted: []string{"GPL", "AGPL"},
	}
}

// resolvedRecord creates a record for a successfully resolved license
func resolvedRecord(name, version, license string) types.LicenseRecord {
	return types.LicenseRecord{
		Dependency: types.Dependency{Name: name, Version: version},
		Licenses:   []string{license},
		LicenseID:  license,
	}
}

// unknownRecord creates a record for a failed resolution
func unknownRecord(name, version, reason string) types.LicenseRecord {
	return types.LicenseRecord{
		Dependency:    types.Dependency{Name: name, Version: version},
		LicenseID:     types.LicenseUnknown,
		FailureReason: reason,
	}
}

// writeTestFile writes content into dir and returns the full path
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
