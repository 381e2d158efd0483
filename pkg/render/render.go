// Package render lays out paragraphs and tables on a termio.IO, wrapping to the terminal width.
package render

import (
	"strings"

	"github.com/mfridman/console/pkg/termio"
	"github.com/mfridman/console/pkg/textutil"
)

// minWrapWidth keeps wrapped columns readable on very narrow terminals.
const minWrapWidth = 20

// Paragraph is a block of text wrapped to the terminal width.
type Paragraph struct {
	Text   string
	Indent int
}

// Render writes the paragraph to out.
func (p Paragraph) Render(out termio.IO) error {
	indent := strings.Repeat(" ", p.Indent)
	width := max(out.Dimensions().Width-p.Indent, minWrapWidth)
	for _, line := range textutil.Wrap(p.Text, width) {
		if err := out.WriteLine(indent + line); err != nil {
			return err
		}
	}
	return nil
}

// Table is a grid of cells. Every column but the last is padded to its widest cell; the last
// column wraps to whatever width the terminal has left.
type Table struct {
	Rows   [][]string
	Indent int
	// Gap is the number of spaces between columns. Zero means 4.
	Gap int
}

// AddRow appends a row of cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table to out.
func (t *Table) Render(out termio.IO) error {
	if len(t.Rows) == 0 {
		return nil
	}
	gap := t.Gap
	if gap <= 0 {
		gap = 4
	}
	widths := t.columnWidths()
	if len(widths) == 0 {
		return nil
	}
	offset := t.Indent
	for _, w := range widths[:len(widths)-1] {
		offset += w + gap
	}
	wrapWidth := max(out.Dimensions().Width-offset, minWrapWidth)
	indent := strings.Repeat(" ", t.Indent)
	continuation := strings.Repeat(" ", offset)
	spacer := strings.Repeat(" ", gap)

	for _, row := range t.Rows {
		var b strings.Builder
		b.WriteString(indent)
		last := ""
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				last = cell
				break
			}
			b.WriteString(textutil.PadRight(cell, widths[i]))
			b.WriteString(spacer)
		}
		lines := textutil.Wrap(last, wrapWidth)
		if len(lines) == 0 {
			if err := out.WriteLine(strings.TrimRight(b.String(), " ")); err != nil {
				return err
			}
			continue
		}
		b.WriteString(lines[0])
		if err := out.WriteLine(b.String()); err != nil {
			return err
		}
		for _, line := range lines[1:] {
			if err := out.WriteLine(continuation + line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Table) columnWidths() []int {
	var cols int
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], textutil.Width(cell))
		}
	}
	return widths
}
