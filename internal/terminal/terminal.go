// Package terminal manages the raw-mode, alternate-screen terminal the game draws on.
package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// Handle is an acquired terminal. Release must be called exactly once per
// acquisition; further calls are no-ops.
type Handle interface {
	Size() (width, height int)
	Draw(frame string) error
	Release() error
}

// Console acquires a terminal session over an input and output file.
type Console struct {
	in     *os.File
	out    io.Writer
	logger *slog.Logger

	makeRaw func(fd int) (*term.State, error)
	restore func(fd int, state *term.State) error
	getSize func(fd int) (int, int, error)
}

// New returns a Console reading keys from in and drawing on out.
func New(in *os.File, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Console{
		in:      in,
		out:     out,
		logger:  logger,
		makeRaw: term.MakeRaw,
		restore: term.Restore,
		getSize: term.GetSize,
	}
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Acquire enters raw mode and the alternate screen and hides the cursor.
// Steps already taken are undone when a later one fails.
func (c *Console) Acquire() (Handle, error) {
	fd := int(c.in.Fd())
	state, err := c.makeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	s := &Screen{console: c, fd: fd, state: state}
	c.logger.Debug("raw mode enabled")

	if err := s.write(termenv.CSI + termenv.AltScreenSeq); err != nil {
		c.releaseAfterFailure(s)
		return nil, fmt.Errorf("enter alternate screen: %w", err)
	}
	if err := s.write(termenv.CSI + termenv.HideCursorSeq); err != nil {
		c.releaseAfterFailure(s)
		return nil, fmt.Errorf("hide cursor: %w", err)
	}
	c.logger.Debug("terminal acquired")
	return s, nil
}

func (c *Console) releaseAfterFailure(s *Screen) {
	if err := s.Release(); err != nil {
		c.logger.Error("rollback of terminal setup failed", "error", err)
	}
}

// Screen is an acquired Console.
type Screen struct {
	console  *Console
	fd       int
	state    *term.State
	released bool
}

// Size returns the terminal dimensions, falling back to 80x24.
func (s *Screen) Size() (int, int) {
	w, h, err := s.console.getSize(s.fd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// Draw replaces the screen content with frame.
func (s *Screen) Draw(frame string) error {
	var b strings.Builder
	b.WriteString(termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1))
	lines := strings.Split(frame, "\n")
	for i, line := range lines {
		b.WriteString(line)
		b.WriteString(termenv.CSI + termenv.EraseLineRightSeq)
		if i < len(lines)-1 {
			// Raw mode disables the implicit carriage return.
			b.WriteString("\r\n")
		}
	}
	b.WriteString(termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 0))
	if err := s.write(b.String()); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// Release leaves raw mode and the alternate screen and shows the cursor.
// Every step runs; the first failure is returned.
func (s *Screen) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	var first error
	step := func(name string, err error) {
		if err == nil {
			s.console.logger.Debug(name + " succeeded")
			return
		}
		s.console.logger.Error(name+" failed", "error", err)
		if first == nil {
			first = fmt.Errorf("%s: %w", name, err)
		}
	}
	step("disable raw mode", s.console.restore(s.fd, s.state))
	step("leave alternate screen", s.write(termenv.CSI+termenv.ExitAltScreenSeq))
	step("show cursor", s.write(termenv.CSI+termenv.ShowCursorSeq))
	return first
}

func (s *Screen) write(seq string) error {
	_, err := io.WriteString(s.console.out, seq)
	return err
}
