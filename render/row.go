package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mwantia/vls/data"
	"github.com/mwantia/vls/identity"
)

// Row is one line of the long-format listing with every field already
// rendered as text. Column widths are computed over rendered text, so
// stringification happens here, once, before layout.
type Row struct {
	Type        string
	Permissions string
	Links       string
	Owner       string
	Group       string
	Size        string
	Time        string
	Name        string

	// Blocks feeds the leading "total" line and stays numeric.
	Blocks int64
}

// NewRow builds a detail row from entry metadata. The mode word is decoded
// into its type symbol and permission string, owner and group IDs are
// resolved through ids, and the modification time is rendered relative
// to now. Any failure aborts the row; there are no fallbacks.
func NewRow(meta *data.Metadata, ids identity.Resolver, now time.Time) (*Row, error) {
	symbol, perms, err := meta.Mode.Decode()
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", meta.Name(), err)
	}

	owner, err := ids.LookupUser(meta.UID)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", meta.Name(), err)
	}

	group, err := ids.LookupGroup(meta.GID)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", meta.Name(), err)
	}

	name := meta.Name()
	if meta.IsSymlink() {
		name = fmt.Sprintf("%s -> %s", name, meta.LinkTarget)
	}

	return &Row{
		Type:        symbol,
		Permissions: perms,
		Links:       strconv.FormatUint(meta.Nlink, 10),
		Owner:       owner,
		Group:       group,
		Size:        strconv.FormatInt(meta.Size, 10),
		Time:        formatModTime(meta.ModifyTime, now),
		Name:        name,
		Blocks:      meta.Blocks,
	}, nil
}

// formatModTime renders a modification time as month and day, each
// space-padded to width 2, followed by either the clock time when t
// falls within six months of now (inclusive in both directions) or the
// four-digit year otherwise.
func formatModTime(t, now time.Time) string {
	var clock string

	lo := now.AddDate(0, -6, 0)
	hi := now.AddDate(0, 6, 0)
	if !t.Before(lo) && !t.After(hi) {
		clock = t.Format("15:04")
	} else {
		clock = fmt.Sprintf("%4d", t.Year())
	}

	return fmt.Sprintf("%2d %2d %s", int(t.Month()), t.Day(), clock)
}
