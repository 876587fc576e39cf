// Package replace implements delete-and-insert replacement
// transactions over the tail of the composing text: table-driven
// last-token replacement, built-in character folding cycles, and
// user-defined tables loaded from Lua scripts.
package replace

import (
	"sort"
	"strings"
)

// Table maps source strings to their replacements. Application scans
// candidate key lengths from longest to shortest over the text
// immediately left of the cursor; the first match wins.
type Table map[string]string

// maxKeyLen returns the longest key length in runes.
func (t Table) maxKeyLen() int {
	max := 0
	for k := range t {
		if n := len([]rune(k)); n > max {
			max = n
		}
	}
	return max
}

// Apply matches the tail of left against the table, longest key first.
// It returns the matched key and its replacement.
func (t Table) Apply(left string) (key, replacement string, ok bool) {
	rs := []rune(left)
	max := t.maxKeyLen()
	if max > len(rs) {
		max = len(rs)
	}

	for l := max; l >= 1; l-- {
		k := string(rs[len(rs)-l:])
		if r, found := t[k]; found {
			return k, r, true
		}
	}
	return "", "", false
}

// FoldTable returns the built-in character folding cycle applied by
// the change-character key: small kana toggle, then dakuten, then
// handakuten where they exist, wrapping back to the plain form.
func FoldTable() Table {
	return Table{
		"つ": "っ", "っ": "づ", "づ": "つ",
		"や": "ゃ", "ゃ": "や",
		"ゆ": "ゅ", "ゅ": "ゆ",
		"よ": "ょ", "ょ": "よ",
		"あ": "ぁ", "ぁ": "あ",
		"い": "ぃ", "ぃ": "い",
		"う": "ぅ", "ぅ": "ゔ", "ゔ": "う",
		"え": "ぇ", "ぇ": "え",
		"お": "ぉ", "ぉ": "お",
		"わ": "ゎ", "ゎ": "わ",
		"か": "が", "が": "か",
		"き": "ぎ", "ぎ": "き",
		"く": "ぐ", "ぐ": "く",
		"け": "げ", "げ": "け",
		"こ": "ご", "ご": "こ",
		"さ": "ざ", "ざ": "さ",
		"し": "じ", "じ": "し",
		"す": "ず", "ず": "す",
		"せ": "ぜ", "ぜ": "せ",
		"そ": "ぞ", "ぞ": "そ",
		"た": "だ", "だ": "た",
		"ち": "ぢ", "ぢ": "ち",
		"て": "で", "で": "て",
		"と": "ど", "ど": "と",
		"は": "ば", "ば": "ぱ", "ぱ": "は",
		"ひ": "び", "び": "ぴ", "ぴ": "ひ",
		"ふ": "ぶ", "ぶ": "ぷ", "ぷ": "ふ",
		"へ": "べ", "べ": "ぺ", "ぺ": "へ",
		"ほ": "ぼ", "ぼ": "ぽ", "ぽ": "ほ",
	}
}

// Static is an ime.Replacer over a fixed table. Lookup is a pure
// function: identical inputs always produce identical expansions.
type Static struct {
	table Table
}

// NewStatic creates a Static replacer.
func NewStatic(table Table) *Static {
	return &Static{table: table}
}

// Lookup returns expansions for target given its surrounding window.
// An exact table hit returns its replacement; otherwise keys that
// start with target are returned as search results, deterministically
// ordered.
func (s *Static) Lookup(left, center, right, target string) []string {
	if target == "" {
		return nil
	}

	if r, ok := s.table[target]; ok {
		return []string{r}
	}

	var out []string
	for k, v := range s.table {
		if strings.HasPrefix(k, target) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
