package session

import "math"

// charsPerWord is the standard word length used for WPM.
const charsPerWord = 5.0

// WPM returns words per minute over the whole target text.
// It is zero until both start and end times are set.
func (s *Session) WPM() uint {
	if s.startedAt.IsZero() || s.endedAt.IsZero() {
		return 0
	}
	minutes := s.endedAt.Sub(s.startedAt).Seconds() / 60
	words := float64(len(s.target)) / charsPerWord
	if minutes <= 0 || words <= 0 {
		return 0
	}
	return uint(math.Round(words / minutes))
}

// Accuracy returns the percentage of typed characters that were not mistakes.
// Mistakes survive backspace, so the result is clamped to [0, 100].
func (s *Session) Accuracy() float64 {
	if s.cursor == 0 {
		return 100
	}
	correct := s.cursor - s.mistakes
	if correct < 0 {
		correct = 0
	}
	acc := float64(correct) / float64(s.cursor) * 100
	return math.Max(0, math.Min(100, acc))
}
