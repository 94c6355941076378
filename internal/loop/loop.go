// Package loop drives a typing session: it renders, polls for input with a
// bounded timeout, and feeds keystrokes to the session until it ends.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typeracer/internal/input"
	"github.com/verte-zerg/typeracer/internal/session"
	"github.com/verte-zerg/typeracer/internal/terminal"
)

// DefaultPollTimeout bounds how long one iteration waits for input.
const DefaultPollTimeout = 250 * time.Millisecond

// InputSource delivers terminal events.
type InputSource interface {
	Poll(timeout time.Duration) (bool, error)
	Read() (input.Event, error)
}

// Terminal is the scoped terminal resource held for the whole run.
type Terminal interface {
	Acquire() (terminal.Handle, error)
}

// Renderer draws one frame of snap onto c. It must not retain snap.
type Renderer func(c *Canvas, snap session.Snapshot)

// Options configures a Loop.
type Options struct {
	Input       InputSource
	Terminal    Terminal
	Render      Renderer
	Logger      *slog.Logger
	PollTimeout time.Duration
}

// Loop owns the terminal and the session for the duration of Run.
type Loop struct {
	input       InputSource
	terminal    Terminal
	render      Renderer
	logger      *slog.Logger
	pollTimeout time.Duration
}

// New validates opts and returns a Loop.
func New(opts Options) (*Loop, error) {
	if opts.Input == nil {
		return nil, errors.New("loop: input source is required")
	}
	if opts.Terminal == nil {
		return nil, errors.New("loop: terminal is required")
	}
	if opts.Render == nil {
		return nil, errors.New("loop: renderer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := opts.PollTimeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	return &Loop{
		input:       opts.Input,
		terminal:    opts.Terminal,
		render:      opts.Render,
		logger:      logger,
		pollTimeout: timeout,
	}, nil
}

// Run plays s until it finishes or is cancelled and returns its final state.
// The terminal is released on every path before Run returns. Cancelling ctx
// cancels the session; the loop notices within one poll timeout.
func (l *Loop) Run(ctx context.Context, s *session.Session) (snap session.Snapshot, err error) {
	logger := l.logger.With("run_id", uuid.NewString())

	screen, err := l.terminal.Acquire()
	if err != nil {
		return s.Snapshot(), fmt.Errorf("acquire terminal: %w", err)
	}
	defer func() {
		if rerr := screen.Release(); rerr != nil {
			if err == nil {
				err = fmt.Errorf("release terminal: %w", rerr)
			} else {
				logger.Error("terminal release failed after error", "error", rerr)
			}
		}
		snap = s.Snapshot()
		logger.Info("session ended",
			"status", snap.Status.String(),
			"wpm", snap.WPM,
			"accuracy", snap.Accuracy,
			"mistakes", snap.Mistakes,
			"error", err,
		)
	}()

	logger.Info("session started", "target_len", len(s.Target()), "poll_timeout", l.pollTimeout)
	canvas := NewCanvas(0, 0)
	for {
		if ctx.Err() != nil && !s.Status().Done() {
			logger.Info("context cancelled", "error", ctx.Err())
			s.Cancel()
		}

		canvas.Reset(screen.Size())
		l.render(canvas, s.Snapshot())
		if err := screen.Draw(canvas.String()); err != nil {
			logger.Error("render failed", "error", err)
			return snap, fmt.Errorf("render: %w", err)
		}

		if s.Status().Done() {
			return snap, nil
		}

		ready, err := l.input.Poll(l.pollTimeout)
		if err != nil {
			logger.Error("poll failed", "error", err)
			return snap, err
		}
		if !ready {
			continue
		}
		ev, err := l.input.Read()
		if err != nil {
			logger.Error("read failed", "error", err)
			return snap, err
		}
		if ev.Kind != input.EventKey {
			logger.Debug("ignored non-key event")
			continue
		}
		l.dispatch(logger, s, ev.Key)
	}
}

func (l *Loop) dispatch(logger *slog.Logger, s *session.Session, k session.Key) {
	before, mistakes := s.Status(), s.Mistakes()
	s.HandleKeypress(k)
	if s.Mistakes() != mistakes {
		logger.Debug("mistake", "cursor", s.Cursor(), "total", s.Mistakes())
	}
	if after := s.Status(); after != before {
		logger.Debug("status changed", "from", before.String(), "to", after.String(), "key", k.Kind.String())
	}
}
