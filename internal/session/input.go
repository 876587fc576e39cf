package session

import (
	"context"
	"strings"

	"github.com/shuna/azooKey/internal/composer"
	"github.com/shuna/azooKey/internal/ime"
)

// Input feeds typed text into the session. Boundary tokens, the
// "none" keyboard language, and simpleInsert all bypass composition:
// any in-progress buffer is force-accepted (or a selection released)
// and the text goes straight to the host document.
func (s *Session) Input(ctx context.Context, text string, style composer.InputStyle, simpleInsert bool) {
	st := s.begin()

	if simpleInsert || st.KeyboardLanguage == ime.LanguageNone || isBoundaryToken(text) {
		if s.state == StateSelected {
			s.exitSelection()
		} else if !s.composer.IsEmpty() {
			s.enter(ctx, st, true, false)
		}
		s.host.Insert(text)
		return
	}

	if s.state == StateSelected {
		s.destroySelection()
	}
	if s.state == StateIdle {
		s.state = StateComposing
	}
	s.composer.Insert(text, style)
	s.setResult(ctx, st)
}

// DeleteBackward deletes n characters left of the cursor. A negative
// count redirects to DeleteForward. While Selected any delete destroys
// the whole selection; idle deletes go to the host document.
func (s *Session) DeleteBackward(ctx context.Context, n int) {
	if n < 0 {
		s.DeleteForward(ctx, -n)
		return
	}
	if n == 0 {
		return
	}
	st := s.begin()
	switch s.state {
	case StateSelected:
		s.destroySelection()
		s.setResult(ctx, st)
	case StateComposing:
		s.composer.DeleteBackward(n)
		s.setResult(ctx, st)
	default:
		s.host.DeleteBackward(n)
	}
}

// DeleteForward deletes n characters right of the cursor. Negative
// counts are rejected.
func (s *Session) DeleteForward(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	st := s.begin()
	switch s.state {
	case StateSelected:
		s.destroySelection()
		s.setResult(ctx, st)
	case StateComposing:
		s.composer.DeleteForward(n)
		s.setResult(ctx, st)
	default:
		s.host.DeleteForward(n)
	}
}

// MoveCursor moves by n characters. While Selected motion exits the
// selection instead of moving inside it. With an active live overlay
// motion force-accepts the stable portion first, so no composing text
// survives to the right of a live-converted region.
func (s *Session) MoveCursor(ctx context.Context, n int) {
	if n == 0 {
		return
	}
	st := s.begin()
	switch s.state {
	case StateSelected:
		s.exitSelection()
	case StateComposing:
		if s.overlay.Active() {
			s.enter(ctx, st, true, true)
			return
		}
		s.composer.MoveCursor(n)
		s.setResult(ctx, st)
	default:
		s.host.MoveCursor(n)
	}
}

// SmoothDelete deletes backward up to, but not past, the nearest
// delimiter from the configured set.
func (s *Session) SmoothDelete(ctx context.Context) {
	st := s.begin()
	switch s.state {
	case StateSelected:
		s.destroySelection()
		s.setResult(ctx, st)
	case StateComposing:
		n := smoothCount(reverseRunes([]rune(s.composer.BeforeCursor())), st.SmoothDelimiters)
		if n == 0 {
			return
		}
		s.composer.DeleteBackward(n)
		s.setResult(ctx, st)
	default:
		s.host.DeleteBackward(smoothCount(reverseRunes([]rune(s.host.BeforeCursor())), st.SmoothDelimiters))
	}
}

// SmoothDeleteForward deletes forward up to the nearest delimiter.
func (s *Session) SmoothDeleteForward(ctx context.Context) {
	st := s.begin()
	switch s.state {
	case StateSelected:
		s.destroySelection()
		s.setResult(ctx, st)
	case StateComposing:
		n := smoothCount([]rune(s.composer.AfterCursor()), st.SmoothDelimiters)
		if n == 0 {
			return
		}
		s.composer.DeleteForward(n)
		s.setResult(ctx, st)
	default:
		s.host.DeleteForward(smoothCount([]rune(s.host.AfterCursor()), st.SmoothDelimiters))
	}
}

// SmartMoveCursorBackward moves backward up to the nearest delimiter.
func (s *Session) SmartMoveCursorBackward(ctx context.Context) {
	st := s.begin()
	if s.state == StateComposing {
		if s.overlay.Active() {
			s.enter(ctx, st, true, true)
			return
		}
		n := smoothCount(reverseRunes([]rune(s.composer.BeforeCursor())), st.SmoothDelimiters)
		if n == 0 {
			return
		}
		s.composer.MoveCursor(-n)
		s.setResult(ctx, st)
		return
	}
	s.host.MoveCursor(-smoothCount(reverseRunes([]rune(s.host.BeforeCursor())), st.SmoothDelimiters))
}

// SmartMoveCursorForward moves forward up to the nearest delimiter.
func (s *Session) SmartMoveCursorForward(ctx context.Context) {
	st := s.begin()
	if s.state == StateComposing {
		if s.overlay.Active() {
			s.enter(ctx, st, true, true)
			return
		}
		n := smoothCount([]rune(s.composer.AfterCursor()), st.SmoothDelimiters)
		if n == 0 {
			return
		}
		s.composer.MoveCursor(n)
		s.setResult(ctx, st)
		return
	}
	s.host.MoveCursor(smoothCount([]rune(s.host.AfterCursor()), st.SmoothDelimiters))
}

// isBoundaryToken reports whether text is one of the hard boundary
// tokens that always end composition.
func isBoundaryToken(text string) bool {
	switch text {
	case "\n", " ", "\t", "\x00":
		return true
	}
	return false
}

// smoothCount is the shared scan for the smooth and smart operations:
// the number of characters up to the first delimiter, the whole run
// when none is found, and never zero while text exists.
func smoothCount(runes []rune, delimiters string) int {
	if len(runes) == 0 {
		return 0
	}
	for i, r := range runes {
		if strings.ContainsRune(delimiters, r) {
			if i == 0 {
				// Directly adjacent to a delimiter; consuming it is
				// the only way to make progress.
				return 1
			}
			return i
		}
	}
	return len(runes)
}

func reverseRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[len(rs)-1-i] = r
	}
	return out
}
