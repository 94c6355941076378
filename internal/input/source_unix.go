//go:build unix

package input

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

type source struct {
	f *os.File
}

func newSource(f *os.File) *source {
	return &source{f: f}
}

func (s *source) wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.f.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

func (s *source) read(buf []byte) (int, error) {
	return s.f.Read(buf)
}
