// Package kana provides Japanese kana text utilities for the composing
// session: rune classification, hiragana/katakana conversion, width and
// Unicode normalization, grapheme counting, and romaji-to-kana
// transliteration.
//
// The package provides:
//
//   - Classification predicates (IsHiragana, IsKatakana, IsKana,
//     ContainsLatin) over normalized text
//   - Script conversion between the hiragana and katakana blocks
//   - Normalize, which folds character width (halfwidth katakana,
//     fullwidth Latin) and applies NFC, producing the canonical form
//     used as ruby-log keys and for Latin detection
//   - CountGraphemes for user-perceived character counts
//   - RomanToKana and RomanSegments for transliterating romaji
//     keystroke sequences into hiragana
//
// Transliteration is greedy longest-match over a built-in table with
// the usual sokuon (doubled consonant) and syllabic-n rules. Input that
// never completes a syllable (a trailing lone consonant) renders
// literally, so the convert target always reproduces every keystroke.
package kana
