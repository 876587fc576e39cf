package session

import (
	"context"
	"strings"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/config"
	"github.com/shuna/azooKey/internal/ime"
	"github.com/shuna/azooKey/internal/kana"
	"github.com/shuna/azooKey/internal/suggest"
)

// SetResult runs one conversion round against the current buffer.
func (s *Session) SetResult(ctx context.Context) {
	st := s.begin()
	s.setResult(ctx, st)
}

// setResult is the conversion round. While the live-conversion overlay
// keeps completing whole leading clauses the round repeats on the
// shrinking remainder; the loop stops as soon as the convert target
// fails to shrink.
func (s *Session) setResult(ctx context.Context, st config.Settings) {
	s.syncSnapshot()
	for {
		if s.composer.IsEmpty() {
			s.overlay.Clear()
			s.updateDisplay("")
			if s.state != StateIdle {
				s.state = StateIdle
				s.selectedSurface = ""
				s.engine.Stop()
			}
			s.sink.Publish(nil, nil, s.chain.Predictions(s.host.EditCount()))
			return
		}

		live := st.LiveConversion && s.state == StateComposing
		if live {
			s.overlay.Begin()
		} else {
			s.overlay.Clear()
		}

		opts := st.Options()
		opts.LiveConversion = live
		resp, err := s.engine.RequestCandidates(ctx, ime.Request{
			ConvertTarget: s.composer.BeforeCursor(),
			Options:       opts,
		})
		if err != nil {
			// Engine unavailable. The raw candidate keeps verbatim
			// input reachable; the round degrades, it does not fail.
			s.overlay.Clear()
			s.refreshDisplay()
			raw := candidate.NewRaw(s.composer.ConvertTarget(), s.composer.UnitCount())
			s.sink.Publish([]candidate.ResultItem{candidate.ConversionItem(raw)}, nil, nil)
			return
		}

		if live {
			s.overlay.Update(resp)
		}
		s.refreshDisplay()
		s.publish(st, resp.Main)
		s.dispatchSuggest(ctx, st)

		fc, ok := s.overlay.FirstClause()
		if !ok {
			return
		}
		// Completing a clause can split a literal unit into per-rune
		// units, so unit count is not a shrinkage measure; the convert
		// target's rune length is.
		before := len([]rune(s.composer.ConvertTarget()))
		s.applyCandidate(st, fc)
		if s.composer.IsEmpty() {
			s.finishComposition(ctx, st, fc)
			return
		}
		if len([]rune(s.composer.ConvertTarget())) >= before {
			return
		}
	}
}

// publish post-processes the engine's main list and hands one round's
// results to the sink.
func (s *Session) publish(st config.Settings, main []candidate.Candidate) {
	main = s.postProcess(st, main)
	items := make([]candidate.ResultItem, 0, len(main))
	for _, c := range main {
		items = append(items, candidate.ConversionItem(c))
	}
	items = append(items, s.replacements()...)
	s.sink.Publish(items, nil, s.chain.Predictions(s.host.EditCount()))
}

// postProcess injects the raw candidate near the top when the Japanese
// keyboard buffer holds Latin text the engine did not echo back, so
// "hello" stays reachable while typing English on the Japanese layout.
func (s *Session) postProcess(st config.Settings, main []candidate.Candidate) []candidate.Candidate {
	if st.KeyboardLanguage != ime.LanguageJapanese {
		return main
	}
	raw := kana.Normalize(s.composer.RawText())
	if !kana.ContainsLatin(raw) {
		return main
	}
	for _, c := range main {
		if c.Text == raw {
			return main
		}
	}
	at := 1
	if len(main) == 0 {
		at = 0
	}
	out := make([]candidate.Candidate, 0, len(main)+1)
	out = append(out, main[:at]...)
	out = append(out, candidate.NewRaw(raw, s.composer.UnitCount()))
	out = append(out, main[at:]...)
	return out
}

// replacements consults the text-replacement collaborator for the
// current convert target against its surrounding document context.
func (s *Session) replacements() []candidate.ResultItem {
	if s.replacer == nil {
		return nil
	}
	target := s.composer.ConvertTarget()
	left := strings.TrimSuffix(s.host.BeforeCursor(), s.displayed)
	texts := s.replacer.Lookup(left, target, s.host.AfterCursor(), target)
	if len(texts) == 0 {
		return nil
	}
	items := make([]candidate.ResultItem, 0, len(texts))
	for _, t := range texts {
		items = append(items, candidate.ReplacementItem(t))
	}
	return items
}

// dispatchSuggest fires the supplementary-suggestion task for the
// current buffer snapshot.
func (s *Session) dispatchSuggest(ctx context.Context, st config.Settings) {
	if s.suggester == nil || !st.Suggest.Enabled {
		return
	}
	s.suggester.Dispatch(ctx, suggest.NewSnapshot(s.ComposingSnapshot()))
}
