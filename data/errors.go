package data

import (
	"errors"
)

// Standard errors that Source implementations should use.
var (
	// Path resolution errors
	ErrInvalidPath    = errors.New("vls: invalid path detected")
	ErrNotMounted     = errors.New("vls: path not mounted")
	ErrAlreadyMounted = errors.New("vls: path already mounted")
	ErrMountBusy      = errors.New("vls: mount point busy")

	// Mount lifecycle errors
	ErrMountFailed   = errors.New("vls: mount initialization failed")
	ErrUnmountFailed = errors.New("vls: unmount cleanup failed")

	// Entry errors
	ErrNotExist     = errors.New("vls: no such file or directory")
	ErrExist        = errors.New("vls: file already exists")
	ErrIsDirectory  = errors.New("vls: is a directory")
	ErrNotDirectory = errors.New("vls: not a directory")
	ErrNotSymlink   = errors.New("vls: not a symbolic link")
	ErrPermission   = errors.New("vls: permission denied")

	// Decode errors
	ErrUnknownType = errors.New("vls: unrecognized file type field")
)
