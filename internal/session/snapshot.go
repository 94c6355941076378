package session

import "time"

// Snapshot is a read-only copy of a session handed to renderers.
type Snapshot struct {
	Status    Status
	Target    []rune
	Typed     []rune
	Cursor    int
	Mistakes  int
	StartedAt time.Time
	EndedAt   time.Time
	Elapsed   time.Duration
	WPM       uint
	Accuracy  float64
}

// Snapshot copies the current state together with derived metrics.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Status:    s.status,
		Target:    s.Target(),
		Typed:     s.Typed(),
		Cursor:    s.cursor,
		Mistakes:  s.mistakes,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
		Elapsed:   s.Elapsed(),
		WPM:       s.WPM(),
		Accuracy:  s.Accuracy(),
	}
}

// Progress returns the typed fraction of the target in [0, 1].
func (s Snapshot) Progress() float64 {
	if len(s.Target) == 0 {
		if s.Status == Finished {
			return 1
		}
		return 0
	}
	return float64(s.Cursor) / float64(len(s.Target))
}
