package loop

import "strings"

// Canvas is the drawing surface a Renderer fills with one frame.
type Canvas struct {
	Width  int
	Height int

	b strings.Builder
}

// NewCanvas returns an empty canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{Width: width, Height: height}
}

// Write appends p to the frame.
func (c *Canvas) Write(p []byte) (int, error) {
	return c.b.Write(p)
}

// WriteString appends s to the frame.
func (c *Canvas) WriteString(s string) (int, error) {
	return c.b.WriteString(s)
}

// String returns the frame drawn so far.
func (c *Canvas) String() string {
	return c.b.String()
}

// Reset clears the frame and resizes the canvas.
func (c *Canvas) Reset(width, height int) {
	c.b.Reset()
	c.Width = width
	c.Height = height
}
