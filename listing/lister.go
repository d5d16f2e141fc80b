package listing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mwantia/vls/data"
	"github.com/mwantia/vls/identity"
	"github.com/mwantia/vls/render"
)

// Filesystem is the enumeration surface the lister needs. It is satisfied
// by the vls mount table as well as by any single Source.
type Filesystem interface {
	// StatMetadata returns entry metadata for the given path without
	// following a final symlink, so a dangling link still resolves.
	StatMetadata(ctx context.Context, path string) (*data.Metadata, error)

	// ReadDirectory returns the immediate children of a directory in
	// enumeration order.
	ReadDirectory(ctx context.Context, path string) ([]*data.Metadata, error)
}

// Lister resolves a target path to its entries and renders them either as
// a compact name grid or as a long-format detail table. Every listing is
// built fresh from live metadata; nothing is cached between calls.
type Lister struct {
	fs  Filesystem
	ids identity.Resolver

	// now is the reference point for timestamp recency; overridable in tests.
	now func() time.Time
}

// NewLister creates a lister over the given filesystem and identity
// resolver.
func NewLister(fs Filesystem, ids identity.Resolver) *Lister {
	return &Lister{
		fs:  fs,
		ids: ids,
		now: time.Now,
	}
}

// List writes the listing for target to w. In detail mode one aligned
// line per entry is emitted behind a "total" line; otherwise a grid of
// bare names. An empty directory produces no output at all. Any failure
// aborts before partial output is written.
func (l *Lister) List(ctx context.Context, w io.Writer, target string, detail bool) error {
	meta, err := l.fs.StatMetadata(ctx, target)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}

	var entries []*data.Metadata
	if meta.IsDir() {
		entries, err = l.fs.ReadDirectory(ctx, target)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
	} else {
		entries = []*data.Metadata{meta}
	}

	if len(entries) == 0 {
		return nil
	}

	if detail {
		return l.writeDetail(w, entries)
	}
	return l.writeGrid(w, entries)
}

func (l *Lister) writeGrid(w io.Writer, entries []*data.Metadata) error {
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}

	return render.WriteGrid(w, names)
}

func (l *Lister) writeDetail(w io.Writer, entries []*data.Metadata) error {
	now := l.now()

	// Collect every row before printing; field widths depend on the
	// whole result set.
	rows := make([]*render.Row, len(entries))
	for i, entry := range entries {
		row, err := render.NewRow(entry, l.ids, now)
		if err != nil {
			return err
		}
		rows[i] = row
	}

	return render.WriteDetail(w, rows)
}
