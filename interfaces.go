package vls

import (
	"context"

	"github.com/mwantia/vls/data"
)

// Source provides entry metadata for a subtree of the filesystem. A
// source only ever reads; listings never mutate the tree they describe.
// Implementations live in the mounts package (local disk, memory,
// sqlite, postgres, s3, consul).
type Source interface {
	// Open is part of the lifecycle behaviour and gets called when the
	// source is mounted.
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and gets called when the
	// source is unmounted.
	Close(ctx context.Context) error

	// StatMetadata returns entry metadata for the given path without
	// following a final symlink. Returns data.ErrNotExist if the path
	// does not exist.
	StatMetadata(ctx context.Context, path string) (*data.Metadata, error)

	// ReadDirectory returns the immediate children of the directory at
	// path, non-recursive, in the order the underlying enumeration
	// yields them. Returns data.ErrNotDirectory for non-directories.
	ReadDirectory(ctx context.Context, path string) ([]*data.Metadata, error)

	// ReadSymlink returns the target of the symbolic link at path,
	// without resolving further levels of indirection. Returns
	// data.ErrNotSymlink for non-links.
	ReadSymlink(ctx context.Context, path string) (string, error)
}
