//go:build !unix

package input

import (
	"os"
	"time"
)

type chunk struct {
	data []byte
	err  error
}

// source reads in one background goroutine because these platforms
// have no bounded wait on a console handle.
type source struct {
	ch    chan chunk
	ready *chunk
	err   error
}

func newSource(f *os.File) *source {
	s := &source{ch: make(chan chunk)}
	go func() {
		for {
			buf := make([]byte, readBufferSize)
			n, err := f.Read(buf)
			s.ch <- chunk{data: buf[:n], err: err}
			if err != nil {
				return
			}
		}
	}()
	return s
}

func (s *source) wait(timeout time.Duration) (bool, error) {
	if s.ready != nil || s.err != nil {
		return true, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case c := <-s.ch:
		s.ready = &c
		return true, nil
	case <-timer.C:
		return false, nil
	}
}

func (s *source) read(buf []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.ready == nil {
		c := <-s.ch
		s.ready = &c
	}
	c := s.ready
	n := copy(buf, c.data)
	c.data = c.data[n:]
	if len(c.data) == 0 {
		s.ready = nil
		s.err = c.err
	}
	if n == 0 {
		return 0, s.err
	}
	return n, nil
}
