package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/typeracer/internal/session"
)

// RenderResult prints the outcome of a session as an aligned table.
func RenderResult(w io.Writer, snap session.Snapshot) error {
	rows := [][]string{
		{"Status", statusLabel(snap.Status)},
		{"WPM", fmt.Sprintf("%d", snap.WPM)},
		{"Accuracy", fmt.Sprintf("%.2f%%", snap.Accuracy)},
		{"Mistakes", fmt.Sprintf("%d", snap.Mistakes)},
		{"Characters", fmt.Sprintf("%d/%d", snap.Cursor, len(snap.Target))},
		{"Time", snap.Elapsed.Round(10 * time.Millisecond).String()},
	}
	for _, line := range formatTable([]string{"Result", ""}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func statusLabel(s session.Status) string {
	switch s {
	case session.Finished:
		return "finished"
	case session.Exiting:
		return "cancelled"
	case session.InProgress:
		return "incomplete"
	default:
		return "not started"
	}
}
