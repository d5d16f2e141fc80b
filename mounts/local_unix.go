//go:build linux || darwin

package mounts

import (
	"io/fs"
	"syscall"
)

// rawStatInfo carries the stat fields that fs.FileInfo does not surface
// portably: the raw mode word with type bits, hard link count, numeric
// owner and group IDs and the allocation-unit count.
type rawStatInfo struct {
	Mode   uint32
	Nlink  uint64
	UID    uint32
	GID    uint32
	Blocks int64
}

// rawStat extracts the platform stat data backing a FileInfo. The casts
// absorb the field-width differences between linux and darwin.
func rawStat(info fs.FileInfo) (rawStatInfo, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return rawStatInfo{}, false
	}

	return rawStatInfo{
		Mode:   uint32(stat.Mode),
		Nlink:  uint64(stat.Nlink),
		UID:    stat.Uid,
		GID:    stat.Gid,
		Blocks: int64(stat.Blocks),
	}, true
}
