// Package tui renders typing sessions and provides the Bubble Tea frontend.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typeracer/internal/loop"
	"github.com/verte-zerg/typeracer/internal/session"
)

const (
	contentRatio = 0.70
	wrongSpace   = '•'
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	resultStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// LoopHint is the key help shown by the raw terminal loop.
const LoopHint = "esc quit"

// Render is the render hook for the interaction loop.
func Render(c *loop.Canvas, snap session.Snapshot) {
	_, _ = c.WriteString(Frame(snap, c.Width, c.Height, LoopHint))
}

// Frame lays out the passage and footer for a width x height screen.
// A zero size renders the passage without layout.
func Frame(snap session.Snapshot, width, height int, hint string) string {
	cursorIndex := -1
	if !snap.Status.Done() && snap.Cursor < len(snap.Target) {
		cursorIndex = snap.Cursor
	}
	styled := buildStyledRunes(snap.Target, snap.Typed, cursorIndex)
	if width == 0 || height == 0 {
		return renderStyledRunes(styled)
	}
	contentWidth := int(float64(width) * contentRatio)
	if contentWidth < 1 {
		contentWidth = 1
	}
	// One column is reserved for a space hanging at the end of a line.
	wrapWidth := contentWidth - 1
	if wrapWidth < 1 {
		wrapWidth = 1
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(styled, wrapWidth))
	footer := renderFooter(snap, hint)
	if height < 3 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func renderFooter(snap session.Snapshot, hint string) string {
	var segments []string
	switch snap.Status {
	case session.NotStarted:
		segments = append(segments, "Start typing")
	case session.InProgress:
		segments = append(segments,
			fmt.Sprintf("Progress %d%%", int(snap.Progress()*100)),
			fmt.Sprintf("Mistakes %d", snap.Mistakes),
			fmt.Sprintf("Accuracy %.1f%%", snap.Accuracy),
			formatElapsed(snap.Elapsed),
		)
	case session.Finished:
		result := fmt.Sprintf("%d WPM · %.1f%%", snap.WPM, snap.Accuracy)
		segments = append(segments,
			resultStyle.Render(result),
			fmt.Sprintf("Mistakes %d", snap.Mistakes),
			formatElapsed(snap.Elapsed),
		)
	case session.Exiting:
		segments = append(segments, "Cancelled")
	}
	if hint != "" {
		segments = append(segments, hint)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", minutes, seconds)
}

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(targetRunes, inputRunes []rune, cursorIndex int) []styledRune {
	words := findWords(targetRunes)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		style := pendingStyle
		if i < len(inputRunes) {
			switch {
			case target == ' ' && inputRunes[i] != ' ':
				displayed = wrongSpace
				style = incorrectStyle
			case inputRunes[i] == target:
				style = correctStyle
			default:
				style = incorrectStyle
			}
		} else if target != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end {
			style = currentWordStyle
		}
		if i == cursorIndex {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	var words []wordRange
	start := -1
	for i, r := range targetRunes {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

// wordForCursor returns the word containing the cursor, or the next one
// when the cursor sits on a space. It is nil when nothing is left to type.
func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines after the last space that fits in width,
// or mid-word when a single word is wider than the line. Spaces never
// start a line; they hang past width so the cursor on them stays visible.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if !item.isSpace && lineWidth+item.width > width && len(line) > 0 {
			out.WriteString(renderStyledRunes(breakLine(line, lastSpace)))
			out.WriteRune('\n')
			if lastSpace >= 0 {
				line = append(line[:0:0], line[lastSpace+1:]...)
			} else {
				line = line[:0]
			}
			lineWidth, lastSpace = measure(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func breakLine(line []styledRune, lastSpace int) []styledRune {
	if lastSpace >= 0 {
		return line[:lastSpace+1]
	}
	return line
}

func measure(line []styledRune) (width, lastSpace int) {
	lastSpace = -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}
