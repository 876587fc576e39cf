package prediction

import (
	"testing"

	"github.com/shuna/azooKey/internal/candidate"
)

func TestZeroValueInvalid(t *testing.T) {
	var c Chain
	if c.ValidFor(0) {
		t.Error("empty chain should not be valid")
	}
	if _, ok := c.Last(); ok {
		t.Error("empty chain should have no last candidate")
	}
}

func TestValidAtMatchingCounter(t *testing.T) {
	var c Chain
	preds := []candidate.Candidate{{Text: "します"}}
	c.Set(candidate.Candidate{Text: "感謝"}, preds, 7)

	if !c.ValidFor(7) {
		t.Error("chain should be valid at the recorded counter")
	}
	if got := c.Predictions(7); len(got) != 1 || got[0].Text != "します" {
		t.Errorf("unexpected predictions: %+v", got)
	}
}

func TestCounterMismatchInvalidates(t *testing.T) {
	var c Chain
	c.Set(candidate.Candidate{Text: "感謝"}, nil, 7)

	if c.ValidFor(8) {
		t.Error("counter mismatch must invalidate the chain")
	}
	if got := c.Predictions(8); got != nil {
		t.Errorf("expected nil predictions, got %+v", got)
	}
}

func TestClear(t *testing.T) {
	var c Chain
	c.Set(candidate.Candidate{Text: "感謝"}, nil, 7)
	c.Clear()

	if c.ValidFor(7) {
		t.Error("cleared chain should be invalid")
	}
}
