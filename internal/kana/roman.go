package kana

import "strings"

// Segment is one transliteration step: Input keystrokes consumed and
// the Output they produced. Splitting a composing buffer inside a
// romaji run uses segments to decide where unit boundaries fall.
type Segment struct {
	Input  string
	Output string
}

// maxRomanKey is the longest key in the transliteration table.
const maxRomanKey = 4

// romanTable maps romaji syllables to hiragana. Greedy longest-match;
// sokuon and syllabic n are handled before table lookup.
var romanTable = map[string]string{
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"sa": "さ", "si": "し", "su": "す", "se": "せ", "so": "そ",
	"za": "ざ", "zi": "じ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"ta": "た", "ti": "ち", "tu": "つ", "te": "て", "to": "と",
	"da": "だ", "di": "ぢ", "du": "づ", "de": "で", "do": "ど",
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"ha": "は", "hi": "ひ", "hu": "ふ", "he": "へ", "ho": "ほ",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"ya": "や", "yu": "ゆ", "yo": "よ",
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"wa": "わ", "wi": "ゐ", "we": "ゑ", "wo": "を",
	"fa": "ふぁ", "fi": "ふぃ", "fu": "ふ", "fe": "ふぇ", "fo": "ふぉ",
	"va": "ゔぁ", "vi": "ゔぃ", "vu": "ゔ", "ve": "ゔぇ", "vo": "ゔぉ",
	"ja": "じゃ", "ji": "じ", "ju": "じゅ", "je": "じぇ", "jo": "じょ",
	"sha": "しゃ", "shi": "し", "shu": "しゅ", "she": "しぇ", "sho": "しょ",
	"cha": "ちゃ", "chi": "ち", "chu": "ちゅ", "che": "ちぇ", "cho": "ちょ",
	"tsu": "つ", "tsa": "つぁ", "tsi": "つぃ", "tse": "つぇ", "tso": "つぉ",
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	"sya": "しゃ", "syu": "しゅ", "syo": "しょ",
	"zya": "じゃ", "zyu": "じゅ", "zyo": "じょ",
	"tya": "ちゃ", "tyu": "ちゅ", "tyo": "ちょ",
	"dya": "ぢゃ", "dyu": "ぢゅ", "dyo": "ぢょ",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	"xa": "ぁ", "xi": "ぃ", "xu": "ぅ", "xe": "ぇ", "xo": "ぉ",
	"la": "ぁ", "li": "ぃ", "lu": "ぅ", "le": "ぇ", "lo": "ぉ",
	"xya": "ゃ", "xyu": "ゅ", "xyo": "ょ",
	"lya": "ゃ", "lyu": "ゅ", "lyo": "ょ",
	"xtu": "っ", "ltu": "っ", "xtsu": "っ", "ltsu": "っ",
	"xwa": "ゎ", "lwa": "ゎ",
	"nn": "ん",
	"-":  "ー",
	",":  "、", ".": "。",
}

// RomanSegments transliterates a romaji keystroke sequence into kana,
// returning one segment per consumed chunk of input. Keystrokes that
// never complete a syllable are emitted literally, one per segment.
func RomanSegments(s string) []Segment {
	rs := []rune(s)
	var segs []Segment

	for i := 0; i < len(rs); {
		// Sokuon: a doubled consonant becomes っ, consuming one key.
		if isRomanConsonant(rs[i]) && rs[i] != 'n' && i+1 < len(rs) && rs[i+1] == rs[i] {
			segs = append(segs, Segment{Input: string(rs[i]), Output: "っ"})
			i++
			continue
		}

		// Syllabic n: "n" before a non-vowel, non-y consonant, or
		// explicitly terminated with an apostrophe.
		if rs[i] == 'n' && i+1 < len(rs) {
			next := rs[i+1]
			if next == '\'' {
				segs = append(segs, Segment{Input: "n'", Output: "ん"})
				i += 2
				continue
			}
			if isRomanConsonant(next) && next != 'y' && next != 'n' {
				segs = append(segs, Segment{Input: "n", Output: "ん"})
				i++
				continue
			}
		}

		matched := false
		max := maxRomanKey
		if rem := len(rs) - i; rem < max {
			max = rem
		}
		for l := max; l >= 1; l-- {
			key := string(rs[i : i+l])
			if out, ok := romanTable[key]; ok {
				segs = append(segs, Segment{Input: key, Output: out})
				i += l
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		// No syllable possible: emit the keystroke literally.
		segs = append(segs, Segment{Input: string(rs[i]), Output: string(rs[i])})
		i++
	}

	return segs
}

// RomanToKana transliterates a romaji keystroke sequence into hiragana.
func RomanToKana(s string) string {
	var sb strings.Builder
	for _, seg := range RomanSegments(s) {
		sb.WriteString(seg.Output)
	}
	return sb.String()
}

func isRomanConsonant(r rune) bool {
	if r < 'a' || r > 'z' {
		return false
	}
	switch r {
	case 'a', 'i', 'u', 'e', 'o':
		return false
	}
	return true
}
