package analyzer

import (
	"context"
	"sync/atomic"
)

// ProgressFunc is called to report progress.
// current is the number of files processed so far, total the number known
// so far, and path the file that just finished (may be empty).
type ProgressFunc func(current, total int, path string)

// Tracker counts processed files. It is safe for concurrent use.
type Tracker struct {
	total    atomic.Int64
	current  atomic.Int64
	callback ProgressFunc
}

// NewTracker creates a tracker that invokes callback on every Tick.
func NewTracker(callback ProgressFunc) *Tracker {
	return &Tracker{callback: callback}
}

// Add grows the total by n.
func (t *Tracker) Add(n int) {
	t.total.Add(int64(n))
}

// Tick marks one file as processed.
func (t *Tracker) Tick(path string) {
	current := int(t.current.Add(1))
	if t.callback != nil {
		t.callback(current, t.Total(), path)
	}
}

// Current returns the number of processed files.
func (t *Tracker) Current() int {
	return int(t.current.Load())
}

// Total returns the number of files expected.
func (t *Tracker) Total() int {
	return int(t.total.Load())
}

type trackerKey struct{}

// WithTracker returns a context that carries t.
func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

// TrackerFromContext returns the tracker carried by ctx, or nil.
func TrackerFromContext(ctx context.Context) *Tracker {
	if t, ok := ctx.Value(trackerKey{}).(*Tracker); ok {
		return t
	}
	return nil
}
