// Package reading provides a general-purpose RubyReader backed by the
// kagome morphological analyzer. It is the fallback when the ruby-log
// heuristic cannot recover a reading for selected text.
package reading

import (
	"context"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/shuna/azooKey/internal/kana"
)

// Service reconstructs hiragana readings by tokenizing text with the
// IPA dictionary. Safe for concurrent use; the tokenizer is immutable
// after construction.
type Service struct {
	t *tokenizer.Tokenizer
}

// New creates a reading service. Building the tokenizer loads the IPA
// dictionary; construct once and reuse.
func New() (*Service, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Service{t: t}, nil
}

// Ruby returns the hiragana reading of text. Tokens the dictionary has
// no reading for (unknown words, symbols) contribute their surface
// form unchanged.
func (s *Service) Ruby(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, tok := range s.t.Tokenize(text) {
		if r, ok := tok.Reading(); ok && r != "" && r != "*" {
			sb.WriteString(kana.ToHiragana(r))
			continue
		}
		sb.WriteString(tok.Surface)
	}
	return sb.String(), nil
}
