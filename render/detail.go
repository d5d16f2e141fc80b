package render

import (
	"fmt"
	"io"
)

// WriteDetail prints rows as a vertically aligned long-format table,
// preceded by a "total" line summing the block counts of all entries.
// Each field's width is the maximum rendered length of that field across
// the whole result set, which is why rows are collected in full before
// the first line is written; streaming would fix widths too early.
func WriteDetail(w io.Writer, rows []*Row) error {
	var blocks int64
	for _, row := range rows {
		blocks += row.Blocks
	}

	if _, err := fmt.Fprintf(w, "total %d\n", blocks); err != nil {
		return err
	}

	var widths struct {
		typ, perms, links, owner, group, size, time, name int
	}
	for _, row := range rows {
		widths.typ = max(widths.typ, len(row.Type))
		widths.perms = max(widths.perms, len(row.Permissions))
		widths.links = max(widths.links, len(row.Links))
		widths.owner = max(widths.owner, len(row.Owner))
		widths.group = max(widths.group, len(row.Group))
		widths.size = max(widths.size, len(row.Size))
		widths.time = max(widths.time, len(row.Time))
		widths.name = max(widths.name, len(row.Name))
	}

	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%*s%*s  %*s %-*s  %-*s  %*s %*s %-*s\n",
			widths.typ, row.Type,
			widths.perms, row.Permissions,
			widths.links, row.Links,
			widths.owner, row.Owner,
			widths.group, row.Group,
			widths.size, row.Size,
			widths.time, row.Time,
			widths.name, row.Name,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
