// Package termio is the narrow output abstraction the console framework writes help and error
// messages through: write text, write a line, and ask the terminal for its size.
package termio

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	// DefaultWidth is used when the writer is not a terminal or detection fails.
	DefaultWidth = 80
	// DefaultHeight is used when the writer is not a terminal or detection fails.
	DefaultHeight = 24
	// MinWidth is the narrowest width reported for a real terminal.
	MinWidth = 40
)

// Dimensions is the size of a terminal in cells.
type Dimensions struct {
	Width  int
	Height int
}

// IO is an output stream that knows how wide it is.
type IO interface {
	io.Writer
	// WriteLine writes text followed by a newline.
	WriteLine(text string) error
	// Dimensions reports the size of the terminal behind the stream.
	Dimensions() Dimensions
}

type fdWriter interface {
	io.Writer
	Fd() uintptr
}

type streamIO struct {
	w    io.Writer
	size func() Dimensions
}

// New wraps w. When w is an *os.File attached to a terminal, Dimensions queries the terminal on
// every call; otherwise it reports DefaultWidth x DefaultHeight.
func New(w io.Writer) IO {
	if w == nil {
		w = os.Stdout
	}
	s := &streamIO{w: w, size: defaultSize}
	if f, ok := w.(fdWriter); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			s.size = func() Dimensions { return terminalSize(fd) }
		}
	}
	return s
}

// Fixed wraps w and always reports the given dimensions.
func Fixed(w io.Writer, width, height int) IO {
	d := Dimensions{Width: width, Height: height}
	return &streamIO{w: w, size: func() Dimensions { return d }}
}

func (s *streamIO) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *streamIO) WriteLine(text string) error {
	_, err := io.WriteString(s.w, text+"\n")
	return err
}

func (s *streamIO) Dimensions() Dimensions {
	return s.size()
}

func defaultSize() Dimensions {
	return Dimensions{Width: DefaultWidth, Height: DefaultHeight}
}

func terminalSize(fd int) Dimensions {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return defaultSize()
	}
	return Dimensions{Width: max(w, MinWidth), Height: h}
}
