// Package rubylog implements the bounded reconversion cache mapping
// surface words to their phonetic (kana) readings.
//
// The log is an ordered associative cache: insertion order governs
// eviction (oldest first), re-inserting an existing key moves it to
// most-recent, and the capacity is fixed at 100 entries. It is purely
// a heuristic; a miss falls back to a general-purpose reading service.
//
// Lookup scans run in cache order, oldest first, and the first match
// wins. Partial (prefix/suffix) hits deliberately do not promote the
// matched key; only direct re-insertion reorders entries.
package rubylog

import (
	"strings"

	"github.com/shuna/azooKey/internal/kana"
)

// Capacity is the maximum number of cached entries.
const Capacity = 100

// maxLookupLen is the longest selected text, in graphemes, the
// reconversion heuristic will attempt.
const maxLookupLen = 20

type entry struct {
	word string
	ruby string
}

// Log is the reconversion cache. The zero value is an empty log.
type Log struct {
	entries []entry // oldest first
}

// Len returns the number of cached entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Insert caches word -> ruby, both kana-normalized. An existing key is
// promoted to most-recent; overflow evicts the oldest entry.
func (l *Log) Insert(word, ruby string) {
	word = kana.Normalize(word)
	ruby = kana.ToHiragana(kana.Normalize(ruby))
	if word == "" || ruby == "" {
		return
	}

	for i, e := range l.entries {
		if e.word == word {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.entries = append(l.entries, entry{word: word, ruby: ruby})
			return
		}
	}

	l.entries = append(l.entries, entry{word: word, ruby: ruby})
	if len(l.entries) > Capacity {
		l.entries = l.entries[1:]
	}
}

// Memorize logs one dictionary entry, stripping the longest common
// kana suffix and then prefix shared by word and ruby first, so only
// the content portion is cached (感謝する/かんしゃする logs 感謝 ->
// かんしゃ, not the inflected form).
func (l *Log) Memorize(word, ruby string) {
	word = kana.Normalize(word)
	ruby = kana.ToHiragana(kana.Normalize(ruby))

	w, r := []rune(word), []rune(ruby)

	// Shared kana suffix.
	for len(w) > 0 && len(r) > 0 {
		lw, lr := w[len(w)-1], r[len(r)-1]
		if lw != lr || !kana.IsKana(lw) {
			break
		}
		w, r = w[:len(w)-1], r[:len(r)-1]
	}

	// Shared kana prefix.
	for len(w) > 0 && len(r) > 0 {
		if w[0] != r[0] || !kana.IsKana(w[0]) {
			break
		}
		w, r = w[1:], r[1:]
	}

	if len(w) == 0 || len(r) == 0 {
		return
	}
	l.Insert(string(w), string(r))
}

// Lookup returns the cached ruby for an exact key, without promoting
// the entry.
func (l *Log) Lookup(word string) (string, bool) {
	word = kana.Normalize(word)
	for _, e := range l.entries {
		if e.word == word {
			return e.ruby, true
		}
	}
	return "", false
}

// RubyIfPossible recovers a reading for selected surface text using
// the cache:
//
//  1. an exact hit returns its ruby directly;
//  2. texts longer than 20 graphemes are refused;
//  3. a cached word that is a suffix of the text with an all-kana
//     remaining prefix yields prefix+ruby;
//  4. symmetrically, a cached word that is a prefix with an all-kana
//     trailing remainder yields ruby+suffix.
//
// Scans are first-match-wins in cache order. A miss returns ("",
// false) and the caller falls back to a general-purpose reading
// service.
func (l *Log) RubyIfPossible(text string) (string, bool) {
	text = kana.Normalize(text)

	if ruby, ok := l.Lookup(text); ok {
		return ruby, true
	}
	if kana.CountGraphemes(text) > maxLookupLen {
		return "", false
	}

	for _, e := range l.entries {
		if rest, ok := strings.CutSuffix(text, e.word); ok && kana.IsKanaString(rest) {
			return kana.ToHiragana(rest) + e.ruby, true
		}
	}
	for _, e := range l.entries {
		if rest, ok := strings.CutPrefix(text, e.word); ok && kana.IsKanaString(rest) {
			return e.ruby + kana.ToHiragana(rest), true
		}
	}

	return "", false
}
