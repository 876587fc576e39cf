package kana

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Offsets between the hiragana and katakana blocks. The convertible
// ranges are U+3041..U+3096 (hiragana) and U+30A1..U+30F6 (katakana).
const kanaBlockOffset = 0x30A1 - 0x3041

// IsHiragana reports whether r is in the convertible hiragana range.
func IsHiragana(r rune) bool {
	return r >= 0x3041 && r <= 0x3096
}

// IsKatakana reports whether r is in the convertible katakana range.
func IsKatakana(r rune) bool {
	return r >= 0x30A1 && r <= 0x30F6
}

// IsKana reports whether r is hiragana, katakana, or the long vowel mark.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r) || r == 'ー'
}

// IsKanaString reports whether every rune of s is kana.
// The empty string is not considered kana.
func IsKanaString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsKana(r) {
			return false
		}
	}
	return true
}

// ToHiragana converts katakana runes in s to hiragana.
// Runes outside the convertible range pass through unchanged.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if IsKatakana(r) {
			return r - kanaBlockOffset
		}
		return r
	}, s)
}

// ToKatakana converts hiragana runes in s to katakana.
// Runes outside the convertible range pass through unchanged.
func ToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if IsHiragana(r) {
			return r + kanaBlockOffset
		}
		return r
	}, s)
}

// Normalize folds character width (halfwidth katakana to fullwidth,
// fullwidth Latin to halfwidth) and applies NFC. All text used as
// ruby-log keys or tested for Latin content goes through this form.
func Normalize(s string) string {
	return norm.NFC.String(width.Fold.String(s))
}

// ContainsLatin reports whether the normalized form of s contains a
// Latin letter.
func ContainsLatin(s string) bool {
	for _, r := range Normalize(s) {
		if unicode.IsLetter(r) && unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

// CountGraphemes returns the number of user-perceived characters in s.
func CountGraphemes(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
