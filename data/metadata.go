package data

import (
	"encoding/json"
	"path"
	"time"
)

// Metadata describes a single filesystem entry as seen by a Source.
// All numeric fields are kept as semantic values; rendering to text
// happens at display time, never here.
type Metadata struct {
	// Unique entry ID within the source (empty for sources without inodes)
	ID string `json:"id,omitempty"`

	// Relative key within the source
	Key string `json:"key"`

	// Raw Unix-style mode word, type bits included
	Mode FileMode `json:"mode"`

	// Number of hard links
	Nlink uint64 `json:"nlink"`

	// Numeric owner and group IDs
	UID uint32 `json:"uid"`
	GID uint32 `json:"gid"`

	// Size in bytes (0 for directories on most sources)
	Size int64 `json:"size"`

	// Allocation-unit count, distinct from the byte size
	Blocks int64 `json:"blocks"`

	// Last modification time
	ModifyTime time.Time `json:"modify_time"`

	// Symlink target, one level of indirection only (empty otherwise)
	LinkTarget string `json:"link_target,omitempty"`
}

// Name returns the base name of the entry.
func (m *Metadata) Name() string {
	return path.Base(m.Key)
}

// IsDir returns true if this entry is a directory.
func (m *Metadata) IsDir() bool {
	return m.Mode.IsDir()
}

// IsSymlink returns true if this entry is a symbolic link.
func (m *Metadata) IsSymlink() bool {
	return m.Mode.IsSymlink()
}

// Clone creates a copy of the entry metadata.
func (m *Metadata) Clone() *Metadata {
	clone := *m
	return &clone
}

// CloneWithKey returns a copy with a different key.
// Useful when converting between source-relative and absolute paths.
func (m *Metadata) CloneWithKey(key string) *Metadata {
	clone := m.Clone()
	clone.Key = key

	return clone
}

// Marshal provides JSON serialization for Metadata.
func (m *Metadata) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal provides JSON deserialization for Metadata.
func (m *Metadata) Unmarshal(data []byte) error {
	return json.Unmarshal(data, &m)
}
