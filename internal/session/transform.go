package session

import (
	"context"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/composer"
	"github.com/shuna/azooKey/internal/replace"
)

// ReplaceLastCharacters applies a replacement table to the text
// immediately left of the cursor, longest key first. While composing
// the delete and insert form one transaction with a single conversion
// round at the end; idle replacements edit the host directly.
func (s *Session) ReplaceLastCharacters(ctx context.Context, table replace.Table) {
	st := s.begin()

	if s.state == StateComposing || s.state == StateSelected {
		key, replacement, ok := table.Apply(s.composer.BeforeCursor())
		if !ok {
			return
		}
		if s.state == StateSelected {
			// Editing the reading ends the selection; the edited
			// buffer converts like typed text.
			s.state = StateComposing
			s.selectedSurface = ""
		}
		s.composer.DeleteBackward(len([]rune(key)))
		s.composer.Insert(replacement, composer.StyleMapped)
		s.setResult(ctx, st)
		return
	}

	key, replacement, ok := table.Apply(s.host.BeforeCursor())
	if !ok {
		return
	}
	s.host.DeleteBackward(len([]rune(key)))
	s.host.Insert(replacement)
}

// ChangeCharacter cycles the character before the cursor through its
// small-kana and dakuten forms.
func (s *Session) ChangeCharacter(ctx context.Context) {
	s.ReplaceLastCharacters(ctx, replace.FoldTable())
}

// SearchReplacements runs a user-invoked replacement search for query
// against the document context and publishes the hits as search
// results. Without a replacer it publishes nothing.
func (s *Session) SearchReplacements(query string) {
	if s.replacer == nil || query == "" {
		return
	}
	texts := s.replacer.Lookup(s.host.BeforeCursor(), query, s.host.AfterCursor(), query)
	if len(texts) == 0 {
		return
	}
	items := make([]candidate.ResultItem, 0, len(texts))
	for _, t := range texts {
		items = append(items, candidate.SearchResultItem(t))
	}
	s.sink.Publish(nil, items, nil)
}
