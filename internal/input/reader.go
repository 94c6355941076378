package input

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"
)

const readBufferSize = 256

// splitRuneWait bounds how long Read waits for the rest of a character
// whose bytes arrived in two reads.
const splitRuneWait = 100 * time.Millisecond

// Reader polls a terminal file for keystrokes. A single read may
// produce several events (pasted text); they are handed out one per Read.
type Reader struct {
	src     *source
	buf     []byte
	partial []byte
	pending []Event
}

// NewReader returns a Reader over f, usually os.Stdin in raw mode.
func NewReader(f *os.File) *Reader {
	return &Reader{
		src: newSource(f),
		buf: make([]byte, readBufferSize),
	}
}

// Poll reports whether an event can be read without blocking, waiting at most timeout.
func (r *Reader) Poll(timeout time.Duration) (bool, error) {
	if len(r.pending) > 0 {
		return true, nil
	}
	ready, err := r.src.wait(timeout)
	if err != nil {
		return false, fmt.Errorf("poll input: %w", err)
	}
	return ready, nil
}

// Read returns the next event, blocking until input arrives.
func (r *Reader) Read() (Event, error) {
	for len(r.pending) == 0 {
		n, err := r.src.read(r.buf)
		if n > 0 {
			r.decode(r.buf[:n])
			if len(r.pending) == 0 && len(r.partial) > 0 {
				ready, werr := r.src.wait(splitRuneWait)
				if werr != nil {
					return Event{}, fmt.Errorf("poll input: %w", werr)
				}
				if !ready {
					r.flushPartial()
				}
			}
			continue
		}
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return Event{}, fmt.Errorf("read input: %w", err)
	}
	ev := r.pending[0]
	r.pending = r.pending[1:]
	return ev, nil
}

// decode appends the events in chunk, keeping back a trailing character
// that is not complete yet.
func (r *Reader) decode(chunk []byte) {
	data := append(r.partial, chunk...)
	cut := incompleteTail(data)
	r.pending = append(r.pending, Decode(data[:cut])...)
	r.partial = append([]byte(nil), data[cut:]...)
}

func (r *Reader) flushPartial() {
	r.pending = append(r.pending, Decode(r.partial)...)
	r.partial = nil
}

// incompleteTail returns the offset of a multi-byte UTF-8 sequence at the
// end of b that still lacks bytes, or len(b) if there is none.
func incompleteTail(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax+1; i-- {
		if utf8.RuneStart(b[i]) {
			if b[i] >= utf8.RuneSelf && !utf8.FullRune(b[i:]) {
				return i
			}
			break
		}
	}
	return len(b)
}
