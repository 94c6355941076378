package session

type action func(s *Session, k Key)

// transitions maps every (status, key kind) pair to its effect.
var transitions = [statusCount][keyKindCount]action{
	NotStarted: {
		KeyChar:      startAndType,
		KeyBackspace: ignore,
		KeyCancel:    cancel,
		KeyOther:     ignore,
	},
	InProgress: {
		KeyChar:      typeChar,
		KeyBackspace: deleteBackward,
		KeyCancel:    cancel,
		KeyOther:     ignore,
	},
	Finished: {
		KeyChar:      ignore,
		KeyBackspace: ignore,
		KeyCancel:    ignore,
		KeyOther:     ignore,
	},
	Exiting: {
		KeyChar:      ignore,
		KeyBackspace: ignore,
		KeyCancel:    ignore,
		KeyOther:     ignore,
	},
}

func ignore(*Session, Key) {}

func startAndType(s *Session, k Key) {
	s.start()
	s.accept(k.Rune)
}

func typeChar(s *Session, k Key) {
	s.accept(k.Rune)
}

func deleteBackward(s *Session, _ Key) {
	s.erase()
}

func cancel(s *Session, _ Key) {
	s.Cancel()
}
