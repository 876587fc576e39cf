package session

import (
	"context"
	"strings"

	"github.com/shuna/azooKey/internal/composer"
	"github.com/shuna/azooKey/internal/kana"
)

// UserSelectedText offers externally-selected host text for
// reconversion. The attempt is declined when the text is empty,
// longer than lengthLimit characters, contains whitespace, or looks
// like a URL; a declined selection republishes results for the
// existing buffer and reports false.
//
// On acceptance the session enters Selected: the reading is recovered
// from the ruby log heuristic, the reading fallback, or the text
// itself, and is fed into a fresh buffer as direct input. The host is
// expected to leave its cursor at the selection's end; the original
// surface stays on screen until a candidate is accepted.
func (s *Session) UserSelectedText(ctx context.Context, text string, lengthLimit int) bool {
	st := s.begin()

	if !selectable(text, lengthLimit) {
		s.setResult(ctx, st)
		return false
	}

	if s.state == StateComposing && !s.composer.IsEmpty() {
		s.enter(ctx, st, true, false)
	}

	ruby, ok := s.ruby.RubyIfPossible(text)
	if !ok && s.reader != nil {
		if r, err := s.reader.Ruby(ctx, text); err == nil && r != "" {
			ruby, ok = r, true
		}
	}
	if !ok {
		ruby = text
	}

	s.composer.Stop()
	s.composer.Insert(ruby, composer.StyleDirect)
	s.overlay.Clear()
	s.state = StateSelected
	s.selectedSurface = text
	s.displayed = text
	s.setResult(ctx, st)
	return true
}

// exitSelection releases a selection without touching its text.
func (s *Session) exitSelection() {
	s.composer.Stop()
	s.overlay.Clear()
	s.state = StateIdle
	s.selectedSurface = ""
	s.displayed = ""
	s.syncSnapshot()
}

// destroySelection deletes the selected surface from the host and
// leaves the session idle with an empty buffer.
func (s *Session) destroySelection() {
	s.updateDisplay("")
	s.composer.Stop()
	s.overlay.Clear()
	s.state = StateIdle
	s.selectedSurface = ""
	s.syncSnapshot()
}

func selectable(text string, lengthLimit int) bool {
	if text == "" {
		return false
	}
	if strings.ContainsAny(text, " \n\t") {
		return false
	}
	if looksLikeURL(text) {
		return false
	}
	return kana.CountGraphemes(text) <= lengthLimit
}

// looksLikeURL is a cheap reject for selections that are addresses
// rather than prose: an explicit scheme, a www prefix, or a dotted
// all-ASCII token.
func looksLikeURL(text string) bool {
	if strings.Contains(text, "://") {
		return true
	}
	if strings.HasPrefix(text, "www.") {
		return true
	}
	hasDot := false
	for _, r := range text {
		switch {
		case r == '.':
			hasDot = true
		case r >= 0x80:
			return false
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '/', r == ':', r == '~', r == '%':
		default:
			return false
		}
	}
	return hasDot
}
