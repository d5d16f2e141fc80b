package data

import (
	"time"

	"github.com/google/uuid"
)

// NewMetadata constructs entry metadata for virtual sources. The type bits
// must already be present in mode; helpers below set them for the common
// cases.
func NewMetadata(key string, mode FileMode, size int64) *Metadata {
	return &Metadata{
		ID:         genMetadataID(),
		Key:        key,
		Mode:       mode,
		Nlink:      1,
		Size:       size,
		Blocks:     SizeToBlocks(size),
		ModifyTime: time.Now(),
	}
}

// NewFileMetadata creates metadata for a regular file.
func NewFileMetadata(key string, size int64, perm FileMode) *Metadata {
	return NewMetadata(key, TypeRegular|perm.Perm(), size)
}

// NewDirectoryMetadata creates metadata for a directory.
func NewDirectoryMetadata(key string, perm FileMode) *Metadata {
	meta := NewMetadata(key, TypeDirectory|perm.Perm(), 0)
	meta.Nlink = 2

	return meta
}

// NewSymlinkMetadata creates metadata for a symbolic link.
func NewSymlinkMetadata(key string, target string) *Metadata {
	meta := NewMetadata(key, TypeSymlink|0o777, int64(len(target)))
	meta.LinkTarget = target

	return meta
}

// SizeToBlocks converts a byte size to an allocation-unit count using
// the conventional 512-byte unit. Sources backed by a real filesystem
// report the kernel's count instead.
func SizeToBlocks(size int64) int64 {
	return (size + 511) / 512
}

func genMetadataID() string {
	return uuid.Must(uuid.NewV7()).String()
}
