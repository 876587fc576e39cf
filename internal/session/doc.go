// Package session implements the composing-session orchestrator: the
// state machine that turns keystrokes and editing calls into composing
// buffer mutations, conversion requests, display reconciliation,
// candidate commits, reconversion of selected text, and prediction
// chaining.
//
// A Session is in one of three states: idle (no composing buffer),
// composing (normal typing), or selected (externally-selected text
// pulled in for reconversion). All operations are total: counts clamp,
// empty-buffer calls no-op, and nothing here returns an error to a
// keystroke.
//
// The session owns its ruby log, live-conversion overlay, and
// prediction chain exclusively. All mutation happens on the caller's
// goroutine; the only concurrency is the optional supplementary
// suggestion task, which runs behind a snapshot staleness guard in
// package suggest.
//
// Configuration is explicit: every public operation takes one fresh
// Settings snapshot from the injected provider and threads it through
// the whole call, conversion request included.
package session
