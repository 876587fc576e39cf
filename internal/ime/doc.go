// Package ime defines the collaborator contracts consumed by the
// composing-session core: the kana-kanji conversion engine, the host
// document the session reconciles displayed text with, the result sink
// that renders candidate lists, the general-purpose reading service,
// and the text-replacement collaborator.
//
// The session core owns no wire protocol and no on-disk format;
// everything behind these interfaces, including persisted learning
// data, belongs to the collaborators.
package ime
