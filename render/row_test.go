package render

import (
	"errors"
	"testing"
	"time"

	"github.com/mwantia/vls/data"
	"github.com/mwantia/vls/identity"
)

func testResolver() identity.Resolver {
	return identity.NewStatic(
		map[uint32]string{0: "root", 1000: "alice"},
		map[uint32]string{0: "wheel", 1000: "staff"},
	)
}

func TestNewRow_RegularFile(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	meta := &data.Metadata{
		Key:        "notes.txt",
		Mode:       data.TypeRegular | 0o644,
		Nlink:      1,
		UID:        1000,
		GID:        1000,
		Size:       0,
		Blocks:     0,
		ModifyTime: time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC),
	}

	row, err := NewRow(meta, testResolver(), now)
	if err != nil {
		t.Fatalf("NewRow failed: %v", err)
	}

	if row.Type != "-" {
		t.Errorf("Expected type -, got %q", row.Type)
	}
	if row.Permissions != "rw-r--r--" {
		t.Errorf("Expected rw-r--r--, got %q", row.Permissions)
	}
	if row.Links != "1" {
		t.Errorf("Expected link count 1, got %q", row.Links)
	}
	if row.Owner != "alice" || row.Group != "staff" {
		t.Errorf("Expected alice/staff, got %q/%q", row.Owner, row.Group)
	}
	if row.Size != "0" {
		t.Errorf("Expected size 0, got %q", row.Size)
	}
	if row.Time != " 3  2 09:30" {
		t.Errorf("Expected %q, got %q", " 3  2 09:30", row.Time)
	}
	if row.Name != "notes.txt" {
		t.Errorf("Expected notes.txt, got %q", row.Name)
	}
}

func TestNewRow_SymlinkName(t *testing.T) {
	meta := data.NewSymlinkMetadata("link", "target/file")

	row, err := NewRow(meta, testResolver(), time.Now())
	if err != nil {
		t.Fatalf("NewRow failed: %v", err)
	}

	if row.Type != "l" {
		t.Errorf("Expected type l, got %q", row.Type)
	}
	if row.Name != "link -> target/file" {
		t.Errorf("Expected link -> target/file, got %q", row.Name)
	}
}

func TestNewRow_UnknownType(t *testing.T) {
	meta := &data.Metadata{Key: "weird", Mode: 0o644}

	if _, err := NewRow(meta, testResolver(), time.Now()); !errors.Is(err, data.ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}

func TestNewRow_IdentityFailure(t *testing.T) {
	meta := &data.Metadata{
		Key:  "file",
		Mode: data.TypeRegular | 0o644,
		UID:  9999,
		GID:  1000,
	}

	if _, err := NewRow(meta, testResolver(), time.Now()); !errors.Is(err, identity.ErrUnknownID) {
		t.Errorf("Expected ErrUnknownID for uid, got %v", err)
	}

	meta.UID = 1000
	meta.GID = 9999
	if _, err := NewRow(meta, testResolver(), time.Now()); !errors.Is(err, identity.ErrUnknownID) {
		t.Errorf("Expected ErrUnknownID for gid, got %v", err)
	}
}

func TestFormatModTime_RecencyWindow(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		mtime time.Time
		want  string
	}{
		"recent-past":      {time.Date(2026, time.May, 4, 8, 5, 0, 0, time.UTC), " 5  4 08:05"},
		"near-future":      {time.Date(2026, time.November, 30, 23, 59, 0, 0, time.UTC), "11 30 23:59"},
		"older-than-6mo":   {time.Date(2025, time.October, 1, 10, 0, 0, 0, time.UTC), "10  1 2025"},
		"beyond-6mo-ahead": {time.Date(2027, time.January, 20, 0, 0, 0, 0, time.UTC), " 1 20 2027"},
		"window-lower-edge": {
			now.AddDate(0, -6, 0),
			"12 15 12:00",
		},
		"window-upper-edge": {
			now.AddDate(0, 6, 0),
			"12 15 12:00",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := formatModTime(tc.mtime, now); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
