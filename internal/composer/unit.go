package composer

import (
	"strings"

	"github.com/shuna/azooKey/internal/kana"
)

// InputStyle selects how a unit's keystrokes become convert-target text.
type InputStyle uint8

const (
	// StyleDirect passes the unit's text through unchanged.
	StyleDirect InputStyle = iota

	// StyleRoman transliterates the unit as part of a contiguous
	// romaji run.
	StyleRoman

	// StyleMapped marks text already produced by a mapping table at
	// insertion time; it contributes literally, like StyleDirect, but
	// keeps its provenance for learning.
	StyleMapped
)

// String returns the style name.
func (s InputStyle) String() string {
	switch s {
	case StyleDirect:
		return "direct"
	case StyleRoman:
		return "roman"
	case StyleMapped:
		return "mapped"
	default:
		return "unknown"
	}
}

// Origin tags where a unit came from.
type Origin uint8

const (
	// OriginKey is a typed keystroke.
	OriginKey Origin = iota

	// OriginLiteral is a literal character (paste, reconversion feed,
	// or a frozen transliteration result).
	OriginLiteral

	// OriginBoundary is a composition-boundary marker. It contributes
	// nothing to the convert target and is skipped by RawText.
	OriginBoundary
)

// Unit is one element of the composing buffer.
type Unit struct {
	// Text is the logical character or string the unit carries.
	Text string

	// Origin tags how the unit entered the buffer.
	Origin Origin

	// Style is the input style that produced the unit.
	Style InputStyle
}

// span records how many convert-target runes a group of consecutive
// units produced, and what they rendered to.
type span struct {
	startUnit int // first unit index in the group
	endUnit   int // one past the last unit index
	out       string
}

// deriveSpans walks units, grouping contiguous roman-style units into
// transliteration runs, and returns the per-group render spans.
func deriveSpans(units []Unit) []span {
	var spans []span
	for i := 0; i < len(units); {
		u := units[i]
		if u.Origin == OriginBoundary {
			spans = append(spans, span{startUnit: i, endUnit: i + 1, out: ""})
			i++
			continue
		}
		if u.Style == StyleRoman {
			j := i
			var keys strings.Builder
			for j < len(units) && units[j].Style == StyleRoman && units[j].Origin != OriginBoundary {
				keys.WriteString(units[j].Text)
				j++
			}
			spans = append(spans, span{startUnit: i, endUnit: j, out: kana.RomanToKana(keys.String())})
			i = j
			continue
		}
		spans = append(spans, span{startUnit: i, endUnit: i + 1, out: u.Text})
		i++
	}
	return spans
}

// renderUnits derives the convert target of a unit list.
func renderUnits(units []Unit) string {
	var sb strings.Builder
	for _, sp := range deriveSpans(units) {
		sb.WriteString(sp.out)
	}
	return sb.String()
}

// targetLen returns the convert-target rune length of a unit list.
func targetLen(units []Unit) int {
	n := 0
	for _, sp := range deriveSpans(units) {
		n += len([]rune(sp.out))
	}
	return n
}

// freeze replaces a group of units with one literal unit per derived
// rune, preserving the rendered text while making every character
// boundary representable.
func freeze(out string) []Unit {
	rs := []rune(out)
	units := make([]Unit, 0, len(rs))
	for _, r := range rs {
		units = append(units, Unit{Text: string(r), Origin: OriginLiteral, Style: StyleDirect})
	}
	return units
}

// splitUnits splits a unit list at convert-target rune position k,
// freezing the group containing the cut when k falls inside one.
// k is clamped to [0, targetLen].
func splitUnits(units []Unit, k int) (left, right []Unit) {
	if k <= 0 {
		return nil, units
	}

	pos := 0
	for _, sp := range deriveSpans(units) {
		n := len([]rune(sp.out))
		if pos+n < k {
			pos += n
			continue
		}
		if pos+n == k {
			// Cut lands on this group's right edge.
			left = append(left, units[:sp.endUnit]...)
			right = append(right, units[sp.endUnit:]...)
			return left, right
		}
		// Cut lands inside this group: freeze it.
		frozen := freeze(sp.out)
		cut := k - pos
		left = append(left, units[:sp.startUnit]...)
		left = append(left, frozen[:cut]...)
		right = append(right, frozen[cut:]...)
		right = append(right, units[sp.endUnit:]...)
		return left, right
	}

	// k beyond the end: everything goes left.
	return units, nil
}
