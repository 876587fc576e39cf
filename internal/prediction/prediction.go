// Package prediction tracks the post-composition prediction chain: the
// most recently accepted candidate, the continuations computed for it,
// and the host edit-counter value at computation time. A later counter
// mismatch invalidates the chain; the displayed document changed under
// us and the predictions no longer continue anything.
package prediction

import "github.com/shuna/azooKey/internal/candidate"

// Chain is the prediction chain. The zero value is an empty chain.
type Chain struct {
	last        *candidate.Candidate
	predictions []candidate.Candidate
	editCount   uint64
}

// Set records an accepted candidate and its continuations, computed
// while the host edit counter was editCount.
func (c *Chain) Set(accepted candidate.Candidate, predictions []candidate.Candidate, editCount uint64) {
	c.last = &accepted
	c.predictions = predictions
	c.editCount = editCount
}

// ValidFor reports whether the chain is still valid at the given host
// edit counter.
func (c *Chain) ValidFor(editCount uint64) bool {
	return c.last != nil && c.editCount == editCount
}

// Last returns the most recently accepted candidate.
func (c *Chain) Last() (candidate.Candidate, bool) {
	if c.last == nil {
		return candidate.Candidate{}, false
	}
	return *c.last, true
}

// Predictions returns the continuations if the chain is valid at
// editCount, nil otherwise.
func (c *Chain) Predictions(editCount uint64) []candidate.Candidate {
	if !c.ValidFor(editCount) {
		return nil
	}
	return c.predictions
}

// Clear empties the chain.
func (c *Chain) Clear() {
	c.last = nil
	c.predictions = nil
	c.editCount = 0
}
