package session

// Status is the lifecycle state of a session.
type Status int

const (
	// NotStarted means no character has been accepted yet.
	NotStarted Status = iota
	// InProgress means the timer is running.
	InProgress
	// Finished means the whole target was typed.
	Finished
	// Exiting means the session was cancelled.
	Exiting

	statusCount
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Finished:
		return "finished"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Done reports whether the session no longer accepts input.
func (s Status) Done() bool {
	return s == Finished || s == Exiting
}
