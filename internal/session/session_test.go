package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func typeString(s *Session, text string) {
	for _, r := range text {
		s.HandleKeypress(Char(r))
	}
}

func requireInvariants(t *testing.T, s *Session) {
	t.Helper()
	require.Len(t, s.Typed(), s.Cursor())
	require.GreaterOrEqual(t, s.Cursor(), 0)
	require.LessOrEqual(t, s.Cursor(), len(s.Target()))
	_, started := s.StartedAt()
	_, ended := s.EndedAt()
	finished := s.Cursor() == len(s.Target()) && started && ended
	if s.Status() != Exiting {
		require.Equal(t, finished, s.Status() == Finished, "status %s", s.Status())
	}
	if s.Status() == NotStarted {
		require.False(t, started)
		require.Zero(t, s.Cursor())
	}
}

func TestNewSession(t *testing.T) {
	s := New("hello")
	assert.Equal(t, NotStarted, s.Status())
	assert.Zero(t, s.Cursor())
	assert.Zero(t, s.Mistakes())
	assert.Empty(t, s.Typed())
	assert.Equal(t, []rune("hello"), s.Target())
	_, started := s.StartedAt()
	_, ended := s.EndedAt()
	assert.False(t, started)
	assert.False(t, ended)
	requireInvariants(t, s)
}

func TestScenarioCleanRun(t *testing.T) {
	s := New("cat")
	var seen []Status
	seen = append(seen, s.Status())
	for _, r := range "cat" {
		s.HandleKeypress(Char(r))
		seen = append(seen, s.Status())
		requireInvariants(t, s)
	}
	assert.Equal(t, []Status{NotStarted, InProgress, InProgress, Finished}, seen)
	assert.Zero(t, s.Mistakes())
	assert.Equal(t, 100.0, s.Accuracy())
}

func TestScenarioOneMistake(t *testing.T) {
	s := New("cat")
	typeString(s, "cxt")
	assert.Equal(t, 1, s.Mistakes())
	assert.Equal(t, 3, s.Cursor())
	assert.Equal(t, Finished, s.Status())
	assert.InDelta(t, 66.67, s.Accuracy(), 0.01)
}

func TestScenarioBackspaceCorrection(t *testing.T) {
	s := New("ab")
	s.HandleKeypress(Char('a'))
	s.HandleKeypress(Backspace())
	requireInvariants(t, s)
	assert.Equal(t, InProgress, s.Status())
	typeString(s, "ab")
	assert.Equal(t, 2, s.Cursor())
	assert.Equal(t, []rune("ab"), s.Typed())
	assert.Zero(t, s.Mistakes())
	assert.Equal(t, Finished, s.Status())
}

func TestScenarioCancelBeforeStart(t *testing.T) {
	s := New("abc")
	s.HandleKeypress(Cancel())
	assert.Equal(t, Exiting, s.Status())
	_, ended := s.EndedAt()
	assert.True(t, ended)

	before := s.Snapshot()
	typeString(s, "abc")
	s.HandleKeypress(Backspace())
	s.HandleKeypress(Cancel())
	assert.Equal(t, before, s.Snapshot())
}

func TestCancelKeepsExistingEndTime(t *testing.T) {
	clock := newFakeClock()
	s := New("abc", WithClock(clock.Now))
	s.HandleKeypress(Char('a'))
	clock.Advance(time.Second)
	s.Cancel()
	end, _ := s.EndedAt()
	clock.Advance(time.Second)
	s.Cancel()
	again, _ := s.EndedAt()
	assert.Equal(t, end, again)
	assert.Equal(t, Exiting, s.Status())
}

func TestCancelAfterFinishIsIgnored(t *testing.T) {
	s := New("a")
	typeString(s, "a")
	s.Cancel()
	assert.Equal(t, Finished, s.Status())
}

func TestInputAfterFinishIsIgnored(t *testing.T) {
	s := New("ab")
	typeString(s, "ab")
	before := s.Snapshot()
	for _, k := range []Key{Char('z'), Backspace(), Cancel(), Other()} {
		s.HandleKeypress(k)
		assert.Equal(t, before, s.Snapshot(), "key %s", k.Kind)
	}
}

func TestBackspaceNotStartedIsNoop(t *testing.T) {
	s := New("ab")
	s.HandleKeypress(Backspace())
	assert.Equal(t, NotStarted, s.Status())
	assert.Zero(t, s.Cursor())
}

func TestBackspaceAtStartOfInput(t *testing.T) {
	s := New("ab")
	s.HandleKeypress(Char('a'))
	s.HandleKeypress(Backspace())
	s.HandleKeypress(Backspace())
	assert.Zero(t, s.Cursor())
	assert.Equal(t, InProgress, s.Status())
	requireInvariants(t, s)
}

func TestOtherKeyIsIgnored(t *testing.T) {
	s := New("ab")
	s.HandleKeypress(Other())
	assert.Equal(t, NotStarted, s.Status())
	s.HandleKeypress(Key{Kind: KeyKind(42)})
	assert.Equal(t, NotStarted, s.Status())
}

func TestMistakesNeverDecrease(t *testing.T) {
	s := New("abcd")
	keys := []Key{Char('x'), Backspace(), Char('a'), Char('y'), Char('z'), Backspace(), Backspace(), Char('b')}
	prev := 0
	for _, k := range keys {
		s.HandleKeypress(k)
		assert.GreaterOrEqual(t, s.Mistakes(), prev)
		prev = s.Mistakes()
		requireInvariants(t, s)
	}
	assert.Equal(t, 3, s.Mistakes())
}

func TestAccuracyClampsWhenMistakesExceedCursor(t *testing.T) {
	s := New("abc")
	for i := 0; i < 3; i++ {
		s.HandleKeypress(Char('x'))
		s.HandleKeypress(Backspace())
	}
	s.HandleKeypress(Char('a'))
	assert.Equal(t, 3, s.Mistakes())
	assert.Equal(t, 1, s.Cursor())
	assert.Equal(t, 0.0, s.Accuracy())
}

func TestAccuracyNoInput(t *testing.T) {
	assert.Equal(t, 100.0, New("abc").Accuracy())
}

func TestMultiByteTarget(t *testing.T) {
	s := New("héllo")
	typeString(s, "héllo")
	assert.Equal(t, Finished, s.Status())
	assert.Equal(t, 5, s.Cursor())
	assert.Zero(t, s.Mistakes())
}

func TestCaseSensitiveComparison(t *testing.T) {
	s := New("A")
	typeString(s, "a")
	assert.Equal(t, 1, s.Mistakes())
}

func TestEmptyTargetFinishesOnFirstChar(t *testing.T) {
	s := New("")
	s.HandleKeypress(Char('a'))
	assert.Equal(t, Finished, s.Status())
	assert.Zero(t, s.Cursor())
	assert.Zero(t, s.WPM())
	requireInvariants(t, s)
}

func TestWPM(t *testing.T) {
	clock := newFakeClock()
	// 50 characters are 10 words.
	target := "abcdefghij" + "abcdefghij" + "abcdefghij" + "abcdefghij" + "abcdefghij"
	s := New(target, WithClock(clock.Now))
	s.HandleKeypress(Char('a'))
	assert.Zero(t, s.WPM())
	clock.Advance(30 * time.Second)
	typeString(s, target[1:])
	require.Equal(t, Finished, s.Status())
	assert.Equal(t, uint(20), s.WPM())
	assert.Equal(t, 30*time.Second, s.Elapsed())
}

func TestWPMRounds(t *testing.T) {
	clock := newFakeClock()
	s := New("abcde", WithClock(clock.Now))
	s.HandleKeypress(Char('a'))
	clock.Advance(7 * time.Second)
	typeString(s, "bcde")
	// 1 word in 7s is 8.57 WPM.
	assert.Equal(t, uint(9), s.WPM())
}

func TestWPMZeroElapsed(t *testing.T) {
	clock := newFakeClock()
	s := New("ab", WithClock(clock.Now))
	typeString(s, "ab")
	assert.Zero(t, s.WPM())
}

func TestWPMAfterCancel(t *testing.T) {
	clock := newFakeClock()
	s := New("abcdefghij", WithClock(clock.Now))
	s.HandleKeypress(Char('a'))
	clock.Advance(time.Minute)
	s.HandleKeypress(Cancel())
	assert.Equal(t, uint(2), s.WPM())
}

func TestElapsedWhileInProgress(t *testing.T) {
	clock := newFakeClock()
	s := New("abc", WithClock(clock.Now))
	assert.Zero(t, s.Elapsed())
	s.HandleKeypress(Char('a'))
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, s.Elapsed())
}

func TestResetMatchesFreshSession(t *testing.T) {
	clock := newFakeClock()
	s := New("abc", WithClock(clock.Now))
	typeString(s, "axc")
	require.Equal(t, Finished, s.Status())
	s.Reset()

	fresh := New("abc", WithClock(clock.Now))
	assert.Equal(t, fresh.Snapshot(), s.Snapshot())

	typeString(s, "abc")
	assert.Equal(t, Finished, s.Status())
	assert.Zero(t, s.Mistakes())
}

func TestResetFromExiting(t *testing.T) {
	s := New("abc")
	s.Cancel()
	s.Reset()
	assert.Equal(t, NotStarted, s.Status())
	_, ended := s.EndedAt()
	assert.False(t, ended)
}

func TestTransitionTableIsComplete(t *testing.T) {
	for st := Status(0); st < statusCount; st++ {
		for kind := KeyKind(0); kind < keyKindCount; kind++ {
			assert.NotNil(t, transitions[st][kind], "missing transition %s x %s", st, kind)
		}
	}
}

func TestCompletionRequiresExactCharCount(t *testing.T) {
	s := New("abcd")
	keys := []Key{Char('a'), Char('b'), Backspace(), Char('b'), Char('c')}
	accepted := 0
	for _, k := range keys {
		s.HandleKeypress(k)
		if k.Kind == KeyChar {
			accepted++
		} else {
			accepted--
		}
		assert.NotEqual(t, Finished, s.Status())
	}
	s.HandleKeypress(Char('d'))
	assert.Equal(t, Finished, s.Status())
	assert.Equal(t, len(s.Target()), s.Cursor())
	assert.Equal(t, 4, accepted+1)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New("abc")
	typeString(s, "ab")
	snap := s.Snapshot()
	snap.Typed[0] = 'z'
	snap.Target[0] = 'z'
	assert.Equal(t, []rune("ab"), s.Typed())
	assert.Equal(t, []rune("abc"), s.Target())
	assert.InDelta(t, 2.0/3.0, snap.Progress(), 1e-9)
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "not-started", NotStarted.String())
	assert.Equal(t, "in-progress", InProgress.String())
	assert.Equal(t, "finished", Finished.String())
	assert.Equal(t, "exiting", Exiting.String())
	assert.True(t, Exiting.Done())
	assert.False(t, InProgress.Done())
}
