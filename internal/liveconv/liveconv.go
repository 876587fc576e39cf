// Package liveconv maintains the speculative live-conversion overlay:
// the last full-buffer conversion result and, derived from it, the
// "complete first clause" candidate considered stable enough to
// auto-accept.
//
// The overlay's lifetime is tied 1:1 to the composing buffer. It is
// refreshed on every conversion round and discarded unconditionally
// when composition stops or selection mode is entered; transitioning
// to a new overlay replaces the displayed composing span entirely, it
// is never an incremental patch.
package liveconv

import (
	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/ime"
)

// State is the overlay state machine position.
type State uint8

const (
	// StateOff means no overlay exists (disabled or not composing).
	StateOff State = iota

	// StatePending means a full-buffer request is outstanding.
	StatePending

	// StateHasOverlay means a full re-rendering of the buffer is
	// available.
	StateHasOverlay
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StatePending:
		return "pending"
	case StateHasOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Overlay holds the speculative conversion state. The zero value is
// an empty overlay in StateOff.
type Overlay struct {
	state       State
	best        *candidate.Candidate
	firstClause *candidate.Candidate
}

// State returns the current state.
func (o *Overlay) State() State { return o.state }

// Begin marks a full-buffer request outstanding.
func (o *Overlay) Begin() {
	o.state = StatePending
}

// Update replaces the overlay with a fresh conversion result. The
// first main result becomes the overlay rendering; zero-or-one
// first-clause candidate becomes the auto-accept candidate.
func (o *Overlay) Update(resp ime.Response) {
	o.best = nil
	o.firstClause = nil

	if len(resp.Main) == 0 {
		o.state = StateOff
		return
	}

	best := resp.Main[0]
	o.best = &best
	if len(resp.FirstClause) > 0 {
		fc := resp.FirstClause[0]
		o.firstClause = &fc
	}
	o.state = StateHasOverlay
}

// Clear discards the overlay unconditionally.
func (o *Overlay) Clear() {
	o.state = StateOff
	o.best = nil
	o.firstClause = nil
}

// Active reports whether an overlay rendering exists.
func (o *Overlay) Active() bool {
	return o.state == StateHasOverlay
}

// Text returns the overlay's full re-rendering of the buffer, or ""
// when inactive.
func (o *Overlay) Text() string {
	if o.best == nil {
		return ""
	}
	return o.best.Text
}

// Best returns a copy of the overlay's best full-buffer candidate.
func (o *Overlay) Best() (candidate.Candidate, bool) {
	if o.best == nil {
		return candidate.Candidate{}, false
	}
	return *o.best, true
}

// FirstClause returns a copy of the stable leading-clause candidate.
func (o *Overlay) FirstClause() (candidate.Candidate, bool) {
	if o.firstClause == nil {
		return candidate.Candidate{}, false
	}
	return *o.firstClause, true
}
