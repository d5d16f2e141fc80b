package mounts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mwantia/vls/data"
)

// LocalMount exposes a subtree of the local filesystem. All operations
// are relative to the root path specified during creation and use
// lstat semantics, so symbolic links are reported, not followed.
type LocalMount struct {
	mu   sync.RWMutex
	root string
}

// NewLocal creates a new LocalMount rooted at the given path.
func NewLocal(root string) *LocalMount {
	return &LocalMount{
		root: filepath.Clean(root),
	}
}

// Open verifies the mount root exists and is a directory.
func (lm *LocalMount) Open(ctx context.Context) error {
	info, err := os.Stat(lm.root)
	if err != nil {
		return fmt.Errorf("%w: %v", data.ErrMountFailed, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s: %v", data.ErrMountFailed, lm.root, data.ErrNotDirectory)
	}
	return nil
}

func (lm *LocalMount) Close(ctx context.Context) error {
	return nil
}

// StatMetadata returns metadata for a single entry without following a
// final symlink, so dangling links still stat successfully.
func (lm *LocalMount) StatMetadata(ctx context.Context, path string) (*data.Metadata, error) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	fullPath := lm.resolvePath(path)
	info, err := os.Lstat(fullPath)
	if err != nil {
		return nil, translateError(err)
	}

	return lm.toMetadata(info, path, fullPath)
}

// ReadDirectory returns the immediate children of a directory in the
// order the kernel yields them; no sorting is applied.
func (lm *LocalMount) ReadDirectory(ctx context.Context, path string) ([]*data.Metadata, error) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	fullPath := lm.resolvePath(path)
	info, err := os.Lstat(fullPath)
	if err != nil {
		return nil, translateError(err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, path)
	}

	dir, err := os.Open(fullPath)
	if err != nil {
		return nil, translateError(err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	metas := make([]*data.Metadata, 0, len(entries))
	for _, entry := range entries {
		entryInfo, err := entry.Info()
		if err != nil {
			return nil, translateError(err)
		}

		childRel := filepath.Join(path, entry.Name())
		childFull := filepath.Join(fullPath, entry.Name())

		meta, err := lm.toMetadata(entryInfo, childRel, childFull)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}

	return metas, nil
}

// ReadSymlink returns the stored link target, one level only.
func (lm *LocalMount) ReadSymlink(ctx context.Context, path string) (string, error) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	target, err := os.Readlink(lm.resolvePath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", data.ErrNotExist, path)
		}
		return "", fmt.Errorf("%w: %s", data.ErrNotSymlink, path)
	}

	return target, nil
}

// resolvePath joins the mount root with the relative path.
func (lm *LocalMount) resolvePath(path string) string {
	return filepath.Join(lm.root, filepath.Clean("/"+path))
}

// toMetadata converts a FileInfo plus its raw stat data into Metadata.
func (lm *LocalMount) toMetadata(info fs.FileInfo, path, fullPath string) (*data.Metadata, error) {
	raw, ok := rawStat(info)
	if !ok {
		return nil, fmt.Errorf("no raw stat data for %s", path)
	}

	meta := &data.Metadata{
		Key:        path,
		Mode:       data.FileMode(raw.Mode),
		Nlink:      raw.Nlink,
		UID:        raw.UID,
		GID:        raw.GID,
		Size:       info.Size(),
		Blocks:     raw.Blocks,
		ModifyTime: info.ModTime(),
	}

	if meta.Mode.IsSymlink() {
		target, err := os.Readlink(fullPath)
		if err != nil {
			return nil, translateError(err)
		}
		meta.LinkTarget = target
	}

	return meta, nil
}

func translateError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return data.ErrNotExist
	}
	if errors.Is(err, fs.ErrPermission) {
		return data.ErrPermission
	}
	return err
}
