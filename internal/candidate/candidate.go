// Package candidate defines conversion candidates and the closed set
// of result-item variants published to the rendering collaborator.
package candidate

// RawScore is the fixed low score attached to synthesized raw-text
// candidates, so verbatim input is always an available outcome even
// when the conversion engine produced nothing.
const RawScore = -3000

// CountMode selects how a candidate's consumed length is addressed.
type CountMode uint8

const (
	// CountUnits addresses input units.
	CountUnits CountMode = iota

	// CountSurfaceChars addresses convert-target characters.
	CountSurfaceChars
)

// ComposingCount is how much of the composing buffer a candidate
// consumes, in one of two addressing modes.
type ComposingCount struct {
	Mode CountMode
	N    int
}

// UnitCount addresses n input units.
func UnitCount(n int) ComposingCount {
	return ComposingCount{Mode: CountUnits, N: n}
}

// SurfaceCount addresses n convert-target characters.
func SurfaceCount(n int) ComposingCount {
	return ComposingCount{Mode: CountSurfaceChars, N: n}
}

// DictEntry links a candidate to one underlying dictionary entry.
type DictEntry struct {
	// Word is the surface form.
	Word string

	// Ruby is the phonetic (kana) reading.
	Ruby string
}

// Candidate is a proposed conversion result. Candidates are produced
// by the conversion engine and are opaque to the session core beyond
// these fields.
type Candidate struct {
	// Text is the display text committed when the candidate is
	// accepted.
	Text string

	// Score ranks the candidate; higher is better.
	Score int

	// Count is how much of the composing buffer the candidate
	// consumes.
	Count ComposingCount

	// Tag is the morphological tag used for learning.
	Tag string

	// Entries are the dictionary entries the candidate was built from.
	Entries []DictEntry

	// Actions are post-hoc secondary effects requested by the engine,
	// executed by the caller after the commit (bracket auto-pairing
	// cursor moves and the like).
	Actions []PostAction
}

// NewRaw synthesizes an uninterpreted candidate carrying the buffer's
// literal text, consuming n input units.
func NewRaw(text string, n int) Candidate {
	return Candidate{
		Text:  text,
		Score: RawScore,
		Count: UnitCount(n),
		Tag:   "raw",
	}
}

// PostActionKind enumerates post-hoc actions an accepted candidate can
// request.
type PostActionKind uint8

const (
	// ActionMoveCursor moves the host cursor by Delta.
	ActionMoveCursor PostActionKind = iota

	// ActionSmoothDelete deletes to the previous delimiter.
	ActionSmoothDelete
)

// PostAction is one post-hoc action.
type PostAction struct {
	Kind  PostActionKind
	Delta int
}

// MoveCursorAction requests a host cursor move of delta.
func MoveCursorAction(delta int) PostAction {
	return PostAction{Kind: ActionMoveCursor, Delta: delta}
}
