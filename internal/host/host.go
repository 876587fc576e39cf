// Package host provides an in-memory HostDocument implementation used
// by tests and the demo binary. Real deployments adapt the platform
// text-field proxy to the same interface.
package host

import (
	"github.com/google/uuid"
)

// Document is an in-memory text field with a cursor, a selection, and
// a monotonically increasing edit counter. The zero value is not
// usable; call New.
type Document struct {
	before   []rune
	after    []rune
	selected string

	editCount uint64
	revision  uuid.UUID
	suppress  bool
}

// New creates an empty document.
func New() *Document {
	return &Document{revision: uuid.New()}
}

// NewFromText creates a document with the cursor at the end of text.
func NewFromText(text string) *Document {
	d := New()
	d.before = []rune(text)
	return d
}

// BeforeCursor implements ime.HostDocument.
func (d *Document) BeforeCursor() string { return string(d.before) }

// AfterCursor implements ime.HostDocument.
func (d *Document) AfterCursor() string { return string(d.after) }

// Text returns the whole document.
func (d *Document) Text() string { return string(d.before) + string(d.after) }

// SelectedText implements ime.HostDocument.
func (d *Document) SelectedText() string { return d.selected }

// Select marks text as selected, as the platform would after a user
// selection gesture.
func (d *Document) Select(text string) { d.selected = text }

// ClearSelection drops the selection without editing.
func (d *Document) ClearSelection() { d.selected = "" }

// Insert implements ime.HostDocument.
func (d *Document) Insert(text string) {
	if text == "" {
		return
	}
	d.before = append(d.before, []rune(text)...)
	d.bump()
}

// DeleteBackward implements ime.HostDocument.
func (d *Document) DeleteBackward(n int) {
	if n <= 0 {
		return
	}
	if n > len(d.before) {
		n = len(d.before)
	}
	d.before = d.before[:len(d.before)-n]
	d.bump()
}

// DeleteForward implements ime.HostDocument.
func (d *Document) DeleteForward(n int) {
	if n <= 0 {
		return
	}
	if n > len(d.after) {
		n = len(d.after)
	}
	d.after = d.after[n:]
	d.bump()
}

// MoveCursor implements ime.HostDocument.
func (d *Document) MoveCursor(n int) {
	switch {
	case n > 0:
		if n > len(d.after) {
			n = len(d.after)
		}
		d.before = append(d.before, d.after[:n]...)
		d.after = d.after[n:]
	case n < 0:
		n = -n
		if n > len(d.before) {
			n = len(d.before)
		}
		moved := append([]rune(nil), d.before[len(d.before)-n:]...)
		d.before = d.before[:len(d.before)-n]
		d.after = append(moved, d.after...)
	default:
		return
	}
	d.bump()
}

// EditCount implements ime.HostDocument.
func (d *Document) EditCount() uint64 { return d.editCount }

// Revision returns an opaque token identifying the current state.
func (d *Document) Revision() uuid.UUID { return d.revision }

// SuppressNextSystemUpdate implements ime.HostDocument.
func (d *Document) SuppressNextSystemUpdate() { d.suppress = true }

// SystemUpdateSuppressed implements ime.HostDocument.
func (d *Document) SystemUpdateSuppressed() bool {
	s := d.suppress
	d.suppress = false
	return s
}

func (d *Document) bump() {
	d.editCount++
	d.revision = uuid.New()
}
