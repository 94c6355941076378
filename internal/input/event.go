// Package input reads and decodes terminal keystrokes.
package input

import "github.com/verte-zerg/typeracer/internal/session"

// EventKind separates keystrokes from other terminal reports.
type EventKind int

const (
	// EventKey carries a keystroke.
	EventKey EventKind = iota
	// EventOther is a non-key report such as a focus change.
	EventOther
)

// Event is one decoded terminal input.
type Event struct {
	Kind EventKind
	Key  session.Key
}

func keyEvent(k session.Key) Event {
	return Event{Kind: EventKey, Key: k}
}
