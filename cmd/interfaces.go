package cmd

import (
	"context"
	"io"

	"github.com/mwantia/vls/data"
)

// API is the slice of the mount table commands operate on. It strips
// away everything not required for listing operations.
type API interface {
	// StatMetadata returns entry metadata for the given path without
	// following a final symlink.
	StatMetadata(ctx context.Context, path string) (*data.Metadata, error)

	// LookupMetadata checks if an entry exists at the given path.
	LookupMetadata(ctx context.Context, path string) (bool, error)

	// ReadDirectory returns the immediate children of the directory at
	// path in enumeration order.
	ReadDirectory(ctx context.Context, path string) ([]*data.Metadata, error)

	// ReadSymlink returns the target of the symbolic link at path, one
	// level of indirection only.
	ReadSymlink(ctx context.Context, path string) (string, error)

	// Mounts returns information about all mounted sources.
	Mounts() []data.MountInfo
}

// Command represents an executable command over the mount table.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls -l [path]")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
