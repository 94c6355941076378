// Package session implements the typing session state machine.
package session

// KeyKind classifies a keystroke for the state machine.
type KeyKind int

const (
	// KeyChar is a printable character.
	KeyChar KeyKind = iota
	// KeyBackspace deletes the last typed character.
	KeyBackspace
	// KeyCancel ends the session.
	KeyCancel
	// KeyOther is any key the session does not react to.
	KeyOther

	keyKindCount
)

func (k KeyKind) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyBackspace:
		return "backspace"
	case KeyCancel:
		return "cancel"
	case KeyOther:
		return "other"
	default:
		return "unknown"
	}
}

// Key is a single keystroke. Rune is only meaningful for KeyChar.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns a printable character key.
func Char(r rune) Key {
	return Key{Kind: KeyChar, Rune: r}
}

// Backspace returns a delete-backward key.
func Backspace() Key {
	return Key{Kind: KeyBackspace}
}

// Cancel returns the cancel key.
func Cancel() Key {
	return Key{Kind: KeyCancel}
}

// Other returns an unmapped key.
func Other() Key {
	return Key{Kind: KeyOther}
}
