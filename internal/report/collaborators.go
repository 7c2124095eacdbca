package report

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// NopTracker discards status transitions.
type NopTracker struct{}

// SetStatus implements Tracker.
func (NopTracker) SetStatus(context.Context, string, Status, string) error { return nil }

// MemoryTracker keeps the latest status per report in memory. The CLI and
// tests use it to observe the lifecycle.
type MemoryTracker struct {
	mu     sync.Mutex
	states map[string][]Status
}

// NewMemoryTracker returns an empty tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{states: make(map[string][]Status)}
}

// SetStatus implements Tracker.
func (t *MemoryTracker) SetStatus(_ context.Context, id string, status Status, _ string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[id] = append(t.states[id], status)
	return nil
}

// Transitions returns the recorded status sequence for a report.
func (t *MemoryTracker) Transitions(id string) []Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Status, len(t.states[id]))
	copy(out, t.states[id])
	return out
}

// DirBlobStore writes artifacts into a directory. Artifact names embed a
// unique report ULID, so concurrent exports never target the same path.
type DirBlobStore struct {
	Dir string
}

// Put implements BlobStore with a one-shot file write.
func (d DirBlobStore) Put(_ context.Context, name, _ string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, name), data, 0o644)
}
