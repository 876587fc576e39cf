// Package suggest runs the optional supplementary-suggestion feature:
// a fire-and-forget task computed against an immutable snapshot of the
// composing state.
//
// There is no cancellation and no queuing. A task captures the buffer
// text and cursor at dispatch time; when it completes, the result is
// published only if the live state still equals the snapshot exactly,
// otherwise it is silently discarded. Staleness is detected after the
// fact, never interrupted early.
package suggest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shuna/azooKey/internal/candidate"
)

// Snapshot is the immutable state a suggestion task is computed for.
type Snapshot struct {
	// Text is the composing text at dispatch time.
	Text string

	// Cursor is the cursor position at dispatch time.
	Cursor int

	// Token identifies the dispatch for tracing.
	Token uuid.UUID
}

// NewSnapshot captures text and cursor under a fresh token.
func NewSnapshot(text string, cursor int) Snapshot {
	return Snapshot{Text: text, Cursor: cursor, Token: uuid.New()}
}

// Provider computes supplementary suggestions for a snapshot.
// Providers may be slow; they run outside the session goroutine.
type Provider interface {
	Suggest(ctx context.Context, snap Snapshot) ([]candidate.ResultItem, error)
}

// Source reports the current composing state for the staleness check.
// It is called from the task goroutine, so implementations must be
// safe for concurrent use.
type Source interface {
	ComposingSnapshot() (text string, cursor int)
}

// Dispatcher owns the fire-and-forget execution. Publish runs on the
// task goroutine; sinks must tolerate that.
type Dispatcher struct {
	provider Provider
	source   Source
	publish  func([]candidate.ResultItem)

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher. publish receives results that
// passed the staleness check.
func NewDispatcher(provider Provider, source Source, publish func([]candidate.ResultItem)) *Dispatcher {
	return &Dispatcher{provider: provider, source: source, publish: publish}
}

// Dispatch starts one suggestion task for snap and returns
// immediately. Provider errors and stale results are dropped without
// retry.
func (d *Dispatcher) Dispatch(ctx context.Context, snap Snapshot) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		items, err := d.provider.Suggest(ctx, snap)
		if err != nil || len(items) == 0 {
			return
		}

		// Publish only if the buffer did not move under us.
		text, cursor := d.source.ComposingSnapshot()
		if text != snap.Text || cursor != snap.Cursor {
			return
		}
		d.publish(items)
	}()
}

// Wait blocks until all in-flight tasks finish. Shutdown paths and
// tests use it.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
