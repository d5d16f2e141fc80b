package data

import (
	"time"
)

// MountInfo holds display metadata for one entry of the mount table.
type MountInfo struct {
	// Absolute mount path within the table
	Path string `json:"path"`

	// Source address the mount was created from (empty for programmatic mounts)
	Address string `json:"address,omitempty"`

	// When the mount was created
	MountedAt time.Time `json:"mounted_at"`
}
