// Package textutil holds small text helpers shared by usage and table rendering.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-wordwrap"
)

// Wrap splits text into lines no wider than width. Runs of whitespace collapse to a single space
// and a word longer than width is kept whole on its own line.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	wrapped := wordwrap.WrapString(strings.Join(words, " "), uint(width))
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces until it occupies width cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
