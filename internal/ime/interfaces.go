package ime

import (
	"context"

	"github.com/shuna/azooKey/internal/candidate"
)

// Response is the conversion engine's answer to one request.
type Response struct {
	// Main is the ranked candidate list.
	Main []candidate.Candidate

	// FirstClause holds candidates covering only the leading clause,
	// produced when the engine judges that clause stable. Used by the
	// live-conversion overlay.
	FirstClause []candidate.Candidate
}

// ConversionEngine is the kana-kanji conversion service. The session
// treats it as a black box; calls are synchronous from the session's
// point of view.
type ConversionEngine interface {
	// RequestCandidates converts the request's target text.
	RequestCandidates(ctx context.Context, req Request) (Response, error)

	// RequestPredictions proposes continuations immediately after
	// left was committed.
	RequestPredictions(ctx context.Context, left candidate.Candidate, opts Options) ([]candidate.Candidate, error)

	// RecordAcceptance records a committed candidate for learning.
	RecordAcceptance(c candidate.Candidate)

	// Stop tells the engine composition ended.
	Stop()
}

// HostDocument is the text field the session reconciles with. It owns
// its own cursor bookkeeping and a monotonically increasing edit
// counter the session reads to detect external mutation.
type HostDocument interface {
	// BeforeCursor returns document text left of the cursor.
	BeforeCursor() string

	// AfterCursor returns document text right of the cursor.
	AfterCursor() string

	// SelectedText returns the current selection, if any.
	SelectedText() string

	// Insert inserts text at the cursor.
	Insert(text string)

	// DeleteBackward deletes n characters left of the cursor.
	DeleteBackward(n int)

	// DeleteForward deletes n characters right of the cursor.
	DeleteForward(n int)

	// MoveCursor moves the cursor by n characters.
	MoveCursor(n int)

	// EditCount returns the monotonically increasing edit counter.
	EditCount() uint64

	// SuppressNextSystemUpdate asks the host to ignore the next
	// system-level text update, avoiding feedback loops.
	SuppressNextSystemUpdate()

	// SystemUpdateSuppressed reports and clears the suppression flag.
	SystemUpdateSuppressed() bool
}

// ResultSink receives the final candidate list for rendering. It is
// invoked at most once per conversion round, plus at most once more
// when a live-conversion clause auto-completes.
type ResultSink interface {
	Publish(results []candidate.ResultItem, supplements []candidate.ResultItem, predictions []candidate.Candidate)
}

// RubyReader reconstructs a phonetic reading for arbitrary text. It is
// the general-purpose fallback behind the ruby-log heuristic.
type RubyReader interface {
	Ruby(ctx context.Context, text string) (string, error)
}

// Replacer is the text-replacement collaborator: a pure function over
// a window of text, used both for mid-composition substitution and for
// user-invoked search.
type Replacer interface {
	Lookup(left, center, right, target string) []string
}
