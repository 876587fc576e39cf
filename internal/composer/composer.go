package composer

import "strings"

// Composer owns the ordered unit sequence and the cursor. The zero
// value is an empty buffer ready for use.
//
// The cursor is expressed in convert-target rune positions and is
// always within [0, len(ConvertTarget())]. All operations clamp
// silently; none of them return errors.
type Composer struct {
	units  []Unit
	cursor int
}

// IsEmpty reports whether the buffer holds no units.
func (c *Composer) IsEmpty() bool {
	return len(c.units) == 0
}

// UnitCount returns the number of input units in the buffer.
func (c *Composer) UnitCount() int {
	return len(c.units)
}

// Cursor returns the cursor position in convert-target runes.
func (c *Composer) Cursor() int {
	return c.cursor
}

// Units returns a copy of the unit sequence.
func (c *Composer) Units() []Unit {
	out := make([]Unit, len(c.units))
	copy(out, c.units)
	return out
}

// ConvertTarget derives the transliterated string offered to the
// conversion engine.
func (c *Composer) ConvertTarget() string {
	return renderUnits(c.units)
}

// BeforeCursor returns the convert target left of the cursor.
func (c *Composer) BeforeCursor() string {
	return string([]rune(c.ConvertTarget())[:c.cursor])
}

// AfterCursor returns the convert target right of the cursor.
func (c *Composer) AfterCursor() string {
	return string([]rune(c.ConvertTarget())[c.cursor:])
}

// RawText concatenates each unit's literal text, skipping boundary
// markers. This is the untransliterated keystroke sequence.
func (c *Composer) RawText() string {
	var sb strings.Builder
	for _, u := range c.units {
		if u.Origin == OriginBoundary {
			continue
		}
		sb.WriteString(u.Text)
	}
	return sb.String()
}

// Insert inserts text at the cursor. Roman-style text becomes one
// keystroke unit per rune so transliteration can resolve
// incrementally; other styles insert a single literal unit.
func (c *Composer) Insert(text string, style InputStyle) {
	if text == "" {
		return
	}

	var ins []Unit
	if style == StyleRoman {
		for _, r := range text {
			ins = append(ins, Unit{Text: string(r), Origin: OriginKey, Style: StyleRoman})
		}
	} else {
		ins = []Unit{{Text: text, Origin: OriginLiteral, Style: style}}
	}

	left, right := splitUnits(c.units, c.cursor)
	merged := make([]Unit, 0, len(left)+len(ins)+len(right))
	merged = append(merged, left...)
	merged = append(merged, ins...)
	newCursor := targetLen(merged)
	merged = append(merged, right...)

	c.units = merged
	c.cursor = newCursor
	// Inserted keys can merge with following roman units into a
	// shorter rendering; re-clamp against the final derivation.
	c.clamp()
}

// InsertBoundary inserts a composition-boundary marker at the cursor.
func (c *Composer) InsertBoundary() {
	left, right := splitUnits(c.units, c.cursor)
	merged := make([]Unit, 0, len(left)+1+len(right))
	merged = append(merged, left...)
	merged = append(merged, Unit{Origin: OriginBoundary})
	merged = append(merged, right...)
	c.units = merged
}

// DeleteBackward removes up to n convert-target runes left of the
// cursor. Deleting past the start deletes what is available.
func (c *Composer) DeleteBackward(n int) {
	if n <= 0 || c.cursor == 0 {
		return
	}
	if n > c.cursor {
		n = c.cursor
	}

	left, right := splitUnits(c.units, c.cursor)
	keep, _ := splitUnits(left, c.cursor-n)
	c.units = append(keep, right...)
	c.cursor = targetLen(keep)
	c.clamp()
}

// DeleteForward removes up to n convert-target runes right of the
// cursor.
func (c *Composer) DeleteForward(n int) {
	if n <= 0 {
		return
	}

	left, right := splitUnits(c.units, c.cursor)
	_, keep := splitUnits(right, n)
	c.cursor = targetLen(left)
	c.units = append(left, keep...)
	c.clamp()
}

// MoveCursor moves the cursor by delta runes, clamping at the buffer
// edges. It returns the delta actually applied.
func (c *Composer) MoveCursor(delta int) int {
	old := c.cursor
	c.cursor += delta
	c.clamp()
	return c.cursor - old
}

// MoveCursorTo places the cursor at an absolute rune position,
// clamping to the buffer edges.
func (c *Composer) MoveCursorTo(pos int) {
	c.cursor = pos
	c.clamp()
}

// PrefixCompleteChars irrevocably consumes the leading n convert-target
// runes; the cursor shifts left with the consumed prefix so it keeps
// addressing the same remaining text.
func (c *Composer) PrefixCompleteChars(n int) {
	if n <= 0 {
		return
	}
	_, rest := splitUnits(c.units, n)
	c.units = rest
	c.cursor -= n
	c.clamp()
}

// PrefixCompleteUnits irrevocably consumes the leading n input units;
// the cursor shifts left with the consumed prefix.
func (c *Composer) PrefixCompleteUnits(n int) {
	if n <= 0 {
		return
	}
	if n > len(c.units) {
		n = len(c.units)
	}
	consumed := targetLen(c.units[:n])
	c.units = append([]Unit(nil), c.units[n:]...)
	c.cursor -= consumed
	c.clamp()
}

// Stop resets the buffer to empty. Composition is over.
func (c *Composer) Stop() {
	c.units = nil
	c.cursor = 0
}

func (c *Composer) clamp() {
	if c.cursor < 0 {
		c.cursor = 0
	}
	if max := targetLen(c.units); c.cursor > max {
		c.cursor = max
	}
}
