package input

import (
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typeracer/internal/session"
)

const (
	keyCtrlC  = 0x03
	keyCtrlH  = 0x08
	keyEscape = 0x1b
	keyDelete = 0x7f
	keySpace  = 0x20
)

// Decode splits a raw read into events. A lone ESC at the end of the
// buffer is the escape key; ESC followed by more bytes starts a sequence.
func Decode(b []byte) []Event {
	var events []Event
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == keyEscape:
			ev, n := decodeEscape(b[i:])
			events = append(events, ev)
			i += n
		case c == keyCtrlC:
			events = append(events, keyEvent(session.Cancel()))
			i++
		case c == keyDelete || c == keyCtrlH:
			events = append(events, keyEvent(session.Backspace()))
			i++
		case c < keySpace:
			events = append(events, keyEvent(session.Other()))
			i++
		default:
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				events = append(events, keyEvent(session.Other()))
				i++
				continue
			}
			if unicode.IsPrint(r) {
				events = append(events, keyEvent(session.Char(r)))
			} else {
				events = append(events, keyEvent(session.Other()))
			}
			i += size
		}
	}
	return events
}

func decodeEscape(b []byte) (Event, int) {
	if len(b) == 1 {
		return keyEvent(session.Cancel()), 1
	}
	switch b[1] {
	case '[':
		n := csiLength(b)
		// Focus in/out reports.
		if n == 3 && (b[2] == 'I' || b[2] == 'O') {
			return Event{Kind: EventOther}, n
		}
		return keyEvent(session.Other()), n
	case 'O':
		if len(b) >= 3 {
			return keyEvent(session.Other()), 3
		}
		return keyEvent(session.Other()), len(b)
	case keyEscape:
		// Double escape: the first one stands alone.
		return keyEvent(session.Cancel()), 1
	default:
		// Alt-modified key.
		_, size := utf8.DecodeRune(b[1:])
		return keyEvent(session.Other()), 1 + size
	}
}

// csiLength returns the length of the CSI sequence at the start of b,
// ending at the first final byte in 0x40-0x7e.
func csiLength(b []byte) int {
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1
		}
	}
	return len(b)
}
