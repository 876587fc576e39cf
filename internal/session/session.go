package session

import (
	"sync"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/composer"
	"github.com/shuna/azooKey/internal/config"
	"github.com/shuna/azooKey/internal/ime"
	"github.com/shuna/azooKey/internal/liveconv"
	"github.com/shuna/azooKey/internal/prediction"
	"github.com/shuna/azooKey/internal/rubylog"
	"github.com/shuna/azooKey/internal/suggest"
)

// State is the session state.
type State uint8

const (
	// StateIdle means no composing buffer and no selection.
	StateIdle State = iota

	// StateComposing means the buffer is non-empty, normal typing.
	StateComposing

	// StateSelected means highlighted host text was pulled into the
	// buffer for reconversion.
	StateSelected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateComposing:
		return "composing"
	case StateSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// Session is the composing-session orchestrator. Not safe for
// concurrent use; all calls belong to one logical input thread.
type Session struct {
	state    State
	composer composer.Composer
	ruby     rubylog.Log
	overlay  liveconv.Overlay
	chain    prediction.Chain

	engine   ime.ConversionEngine
	host     ime.HostDocument
	sink     ime.ResultSink
	reader   ime.RubyReader
	replacer ime.Replacer
	provider config.Provider

	suggester *suggest.Dispatcher

	// displayed is the text currently shown for the composing region,
	// which sits immediately left of the host cursor.
	displayed string

	// selectedSurface is the original surface text while Selected.
	selectedSurface string

	// skipDisplay suppresses host pushes during transactions and
	// display-preserving commits.
	skipDisplay bool

	// snapMu guards the published buffer snapshot. The suggestion
	// task's staleness check reads it from its own goroutine; it must
	// never touch the composer directly.
	snapMu     sync.Mutex
	snapText   string
	snapCursor int
}

// Option configures a Session.
type Option func(*Session)

// WithRubyReader installs the general-purpose reading fallback used
// when the ruby-log heuristic misses.
func WithRubyReader(r ime.RubyReader) Option {
	return func(s *Session) { s.reader = r }
}

// WithReplacer installs the text-replacement collaborator.
func WithReplacer(r ime.Replacer) Option {
	return func(s *Session) { s.replacer = r }
}

// WithSuggestProvider enables supplementary suggestions from the given
// provider. Results that survive the staleness check are published as
// supplements on the result sink.
func WithSuggestProvider(p suggest.Provider) Option {
	return func(s *Session) {
		s.suggester = suggest.NewDispatcher(p, s, func(items []candidate.ResultItem) {
			s.sink.Publish(nil, items, nil)
		})
	}
}

// New creates a session over its collaborators.
func New(engine ime.ConversionEngine, host ime.HostDocument, sink ime.ResultSink, provider config.Provider, opts ...Option) *Session {
	s := &Session{
		engine:   engine,
		host:     host,
		sink:     sink,
		provider: provider,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// ComposingText returns the current convert target.
func (s *Session) ComposingText() string {
	return s.composer.ConvertTarget()
}

// ComposingSnapshot implements suggest.Source: the buffer text and
// cursor compared against a task's dispatch-time snapshot. It returns
// the synchronized copy kept by syncSnapshot, never the composer
// itself, so the task goroutine can call it at any time.
func (s *Session) ComposingSnapshot() (string, int) {
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	return s.snapText, s.snapCursor
}

// syncSnapshot republishes the buffer state after a mutation. Every
// path that changes the composer ends in a syncSnapshot call before
// control returns to the caller.
func (s *Session) syncSnapshot() {
	text, cursor := s.composer.ConvertTarget(), s.composer.Cursor()
	s.snapMu.Lock()
	s.snapText = text
	s.snapCursor = cursor
	s.snapMu.Unlock()
}

// WaitSuggestions blocks until in-flight supplementary-suggestion
// tasks finish. Used on shutdown and in tests.
func (s *Session) WaitSuggestions() {
	if s.suggester != nil {
		s.suggester.Wait()
	}
}

// RubyLog exposes the reconversion cache for host-driven seeding.
func (s *Session) RubyLog() *rubylog.Log {
	return &s.ruby
}

// begin starts a public operation: take the settings snapshot and
// drop a prediction chain the host has edited out from under.
func (s *Session) begin() config.Settings {
	st := s.provider.Snapshot()
	if _, ok := s.chain.Last(); ok && !s.chain.ValidFor(s.host.EditCount()) {
		s.chain.Clear()
	}
	return st
}

// render returns what the composing region should currently show.
func (s *Session) render() string {
	if s.state == StateSelected {
		// The original surface stays on screen until a candidate is
		// accepted.
		return s.displayed
	}
	if s.overlay.Active() {
		return s.overlay.Text()
	}
	return s.composer.ConvertTarget()
}

// updateDisplay reconciles the host's composing region with text,
// editing only the differing suffix.
func (s *Session) updateDisplay(text string) {
	if s.skipDisplay {
		s.displayed = text
		return
	}
	if text == s.displayed {
		return
	}

	old := []rune(s.displayed)
	want := []rune(text)
	common := 0
	for common < len(old) && common < len(want) && old[common] == want[common] {
		common++
	}

	// Host-side observers must not mistake these edits for external
	// ones.
	s.host.SuppressNextSystemUpdate()
	if n := len(old) - common; n > 0 {
		s.host.DeleteBackward(n)
	}
	if common < len(want) {
		s.host.Insert(string(want[common:]))
	}
	s.displayed = text
}

// refreshDisplay pushes the current rendering to the host.
func (s *Session) refreshDisplay() {
	s.updateDisplay(s.render())
}
