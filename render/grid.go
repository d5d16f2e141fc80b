package render

import (
	"fmt"
	"io"
	"strings"
)

// GridColumns is the fixed number of columns in the compact listing.
const GridColumns = 3

// LayoutGrid arranges names into rows for fixed-width printing. The flat
// list is partitioned into GridColumns contiguous slices of equal length
// (the last padded with empty placeholders) and transposed, so names fill
// column by column: the first ceil(n/3) names run down the first column.
// Placeholders are dropped from the output rows. Empty input yields no
// rows at all.
func LayoutGrid(names []string) [][]string {
	if len(names) == 0 {
		return nil
	}

	height := (len(names) + GridColumns - 1) / GridColumns

	columns := make([][]string, GridColumns)
	for c := range columns {
		columns[c] = make([]string, height)
		for r := 0; r < height; r++ {
			if i := c*height + r; i < len(names) {
				columns[c][r] = names[i]
			}
		}
	}

	rows := make([][]string, height)
	for r := 0; r < height; r++ {
		row := make([]string, 0, GridColumns)
		for c := 0; c < GridColumns; c++ {
			if columns[c][r] != "" {
				row = append(row, columns[c][r])
			}
		}
		rows[r] = row
	}

	return rows
}

// WriteGrid prints names as a grid. All cells share a single width, the
// longest name plus a one-space margin, and every cell is left-justified
// to it, trailing cell included. Empty input produces no output, not even
// a blank line.
func WriteGrid(w io.Writer, names []string) error {
	rows := LayoutGrid(names)
	if rows == nil {
		return nil
	}

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	width++

	var b strings.Builder
	for _, row := range rows {
		b.Reset()
		for _, cell := range row {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", width-len(cell)))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}

	return nil
}
