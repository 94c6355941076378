package session

import "time"

// Session tracks typing progress against a fixed target text.
// It is not safe for concurrent use.
type Session struct {
	target []rune
	typed  []rune
	cursor int
	status Status

	startedAt time.Time
	endedAt   time.Time
	mistakes  int

	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now as the session's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a session for target in the NotStarted state.
func New(target string, opts ...Option) *Session {
	s := &Session{
		target: []rune(target),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleKeypress applies one keystroke. Input after Finished or Exiting is ignored.
func (s *Session) HandleKeypress(k Key) {
	if k.Kind < 0 || k.Kind >= keyKindCount {
		k = Other()
	}
	transitions[s.status][k.Kind](s, k)
}

// Cancel moves the session to Exiting and stamps the end time if unset.
// A finished or already cancelled session is left unchanged.
func (s *Session) Cancel() {
	if s.status.Done() {
		return
	}
	s.status = Exiting
	if s.endedAt.IsZero() {
		s.endedAt = s.now()
	}
}

// Reset restores the construction-time state, keeping the target text.
func (s *Session) Reset() {
	s.typed = nil
	s.cursor = 0
	s.status = NotStarted
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.mistakes = 0
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Cursor returns the number of accepted characters.
func (s *Session) Cursor() int { return s.cursor }

// Mistakes returns the number of mismatched characters ever typed.
func (s *Session) Mistakes() int { return s.mistakes }

// Target returns a copy of the target text.
func (s *Session) Target() []rune { return append([]rune(nil), s.target...) }

// Typed returns a copy of the typed history.
func (s *Session) Typed() []rune { return append([]rune(nil), s.typed...) }

// StartedAt returns the time of the first accepted character.
func (s *Session) StartedAt() (time.Time, bool) { return s.startedAt, !s.startedAt.IsZero() }

// EndedAt returns the completion or cancellation time.
func (s *Session) EndedAt() (time.Time, bool) { return s.endedAt, !s.endedAt.IsZero() }

// Elapsed returns time spent typing. While in progress it is measured against the clock.
func (s *Session) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.endedAt
	if end.IsZero() {
		end = s.now()
	}
	if end.Before(s.startedAt) {
		return 0
	}
	return end.Sub(s.startedAt)
}

func (s *Session) start() {
	s.status = InProgress
	s.startedAt = s.now()
}

func (s *Session) accept(r rune) {
	if s.cursor >= len(s.target) {
		s.finishIfComplete()
		return
	}
	if r != s.target[s.cursor] {
		s.mistakes++
	}
	s.typed = append(s.typed, r)
	s.cursor++
	s.finishIfComplete()
}

func (s *Session) finishIfComplete() {
	if s.cursor != len(s.target) {
		return
	}
	s.status = Finished
	s.endedAt = s.now()
}

func (s *Session) erase() {
	if s.cursor == 0 {
		return
	}
	s.cursor--
	s.typed = s.typed[:s.cursor]
}
