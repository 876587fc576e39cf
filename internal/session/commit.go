package session

import (
	"context"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/config"
	"github.com/shuna/azooKey/internal/ime"
)

// Complete commits a candidate the user picked from the published
// list. The buffer prefix it covers is consumed; if the buffer
// empties, composition ends and the prediction chain refreshes,
// otherwise the remainder is reconverted.
func (s *Session) Complete(ctx context.Context, c candidate.Candidate) {
	st := s.begin()
	if s.composer.IsEmpty() {
		return
	}
	s.applyCandidate(st, c)
	if s.composer.IsEmpty() {
		s.finishComposition(ctx, st, c)
		return
	}
	s.setResult(ctx, st)
}

// Enter commits what is visible. While Selected it only exits the
// selection. With an active overlay the overlay's best candidate is
// committed, otherwise the buffer's literal text as a raw candidate.
// The committed candidate's post-hoc actions are returned for the
// caller to execute against the host.
//
// modifyDisplay false means the host already shows the committed text
// and must not be edited again; requireSetResult false skips the
// reconversion round for a non-empty remainder.
func (s *Session) Enter(ctx context.Context, modifyDisplay, requireSetResult bool) []candidate.PostAction {
	st := s.begin()
	return s.enter(ctx, st, modifyDisplay, requireSetResult)
}

func (s *Session) enter(ctx context.Context, st config.Settings, modifyDisplay, requireSetResult bool) []candidate.PostAction {
	if s.state == StateSelected {
		s.exitSelection()
		if requireSetResult {
			s.setResult(ctx, st)
		}
		return nil
	}
	if s.composer.IsEmpty() {
		return nil
	}

	c, ok := s.overlay.Best()
	if !ok {
		c = candidate.NewRaw(s.composer.ConvertTarget(), s.composer.UnitCount())
	}

	if !modifyDisplay {
		s.skipDisplay = true
		defer func() { s.skipDisplay = false }()
	}
	s.applyCandidate(st, c)
	if s.composer.IsEmpty() {
		s.finishComposition(ctx, st, c)
	} else if requireSetResult {
		s.setResult(ctx, st)
	}
	return c.Actions
}

// StopComposition abandons the buffer without committing. Typed text
// already on screen stays there.
func (s *Session) StopComposition() {
	s.composer.Stop()
	s.overlay.Clear()
	s.state = StateIdle
	s.selectedSurface = ""
	s.displayed = ""
	s.engine.Stop()
	s.syncSnapshot()
}

// applyCandidate performs the committing half shared by Complete,
// Enter, and clause auto-completion: ruby log memorization, learning,
// prefix consumption, and the display push.
func (s *Session) applyCandidate(st config.Settings, c candidate.Candidate) {
	for _, e := range c.Entries {
		s.ruby.Memorize(e.Word, e.Ruby)
	}
	if st.Learning != ime.LearningDisabled {
		s.engine.RecordAcceptance(c)
	}

	switch c.Count.Mode {
	case candidate.CountUnits:
		s.composer.PrefixCompleteUnits(c.Count.N)
	case candidate.CountSurfaceChars:
		s.composer.PrefixCompleteChars(c.Count.N)
	}

	if s.state == StateSelected {
		// Acceptance ends the selection; the remainder behaves like
		// freshly typed text.
		s.state = StateComposing
		s.selectedSurface = ""
	}
	s.overlay.Clear()
	s.commitDisplay(c.Text, s.composer.ConvertTarget())
	s.syncSnapshot()
}

// finishComposition ends composition after a commit emptied the
// buffer and refreshes the prediction chain for the accepted text.
func (s *Session) finishComposition(ctx context.Context, st config.Settings, accepted candidate.Candidate) {
	s.overlay.Clear()
	s.composer.Stop()
	s.state = StateIdle
	s.selectedSurface = ""
	s.engine.Stop()
	s.syncSnapshot()

	preds, err := s.engine.RequestPredictions(ctx, accepted, st.Options())
	if err != nil {
		preds = nil
	}
	s.chain.Set(accepted, preds, s.host.EditCount())
	s.sink.Publish(nil, nil, preds)
}

// commitDisplay pushes committed followed by the remaining composing
// text, then shrinks the tracked region to the remainder so committed
// text graduates out of it.
func (s *Session) commitDisplay(committed, remaining string) {
	if s.skipDisplay {
		s.displayed = remaining
		return
	}
	s.updateDisplay(committed + remaining)
	s.displayed = remaining
}
