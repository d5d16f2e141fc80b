package mounts

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"github.com/mwantia/vls/data"
)

// MemoryMount is a thread-safe in-memory source. Entries exist purely as
// metadata and are lost when the mount is destroyed. A B-tree keeps the
// key index ordered, so directories enumerate in key order.
type MemoryMount struct {
	mu sync.RWMutex

	keys     *btree.Map[string, string]
	metadata map[string]*data.Metadata
}

// NewMemory creates a new in-memory source with an empty root directory.
func NewMemory() *MemoryMount {
	mm := &MemoryMount{
		keys:     btree.NewMap[string, string](0),
		metadata: make(map[string]*data.Metadata),
	}

	root := data.NewDirectoryMetadata("", 0o755)
	mm.keys.Set("", root.ID)
	mm.metadata[root.ID] = root

	return mm
}

func (mm *MemoryMount) Open(ctx context.Context) error {
	return nil
}

func (mm *MemoryMount) Close(ctx context.Context) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.keys.Clear()
	for k := range mm.metadata {
		delete(mm.metadata, k)
	}

	return nil
}

// Put inserts or replaces an entry. The parent directory must already
// exist.
func (mm *MemoryMount) Put(meta *data.Metadata) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	key := normalizeKey(meta.Key)
	meta = meta.CloneWithKey(key)

	if parent := parentKey(key); key != "" {
		id, exists := mm.keys.Get(parent)
		if !exists {
			return fmt.Errorf("%w: %s", data.ErrNotExist, parent)
		}
		if !mm.metadata[id].IsDir() {
			return fmt.Errorf("%w: %s", data.ErrNotDirectory, parent)
		}
	}

	if id, exists := mm.keys.Get(key); exists {
		delete(mm.metadata, id)
	}

	mm.keys.Set(key, meta.ID)
	mm.metadata[meta.ID] = meta

	return nil
}

// CreateDirectory inserts a directory entry.
func (mm *MemoryMount) CreateDirectory(key string, perm data.FileMode) (*data.Metadata, error) {
	meta := data.NewDirectoryMetadata(normalizeKey(key), perm)
	if err := mm.Put(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// CreateFile inserts a regular file entry.
func (mm *MemoryMount) CreateFile(key string, size int64, perm data.FileMode) (*data.Metadata, error) {
	meta := data.NewFileMetadata(normalizeKey(key), size, perm)
	if err := mm.Put(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// CreateSymlink inserts a symbolic link entry pointing at target.
func (mm *MemoryMount) CreateSymlink(key string, target string) (*data.Metadata, error) {
	meta := data.NewSymlinkMetadata(normalizeKey(key), target)
	if err := mm.Put(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (mm *MemoryMount) StatMetadata(ctx context.Context, p string) (*data.Metadata, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	meta, err := mm.lookup(normalizeKey(p))
	if err != nil {
		return nil, err
	}

	return meta.Clone(), nil
}

func (mm *MemoryMount) ReadDirectory(ctx context.Context, p string) ([]*data.Metadata, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	key := normalizeKey(p)
	meta, err := mm.lookup(key)
	if err != nil {
		return nil, err
	}
	if !meta.IsDir() {
		return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, p)
	}

	prefix := key
	if prefix != "" {
		prefix += "/"
	}

	var children []*data.Metadata
	mm.keys.Ascend(prefix, func(childKey, id string) bool {
		if !strings.HasPrefix(childKey, prefix) {
			return false
		}
		if childKey == key {
			return true
		}
		// Immediate children only
		if strings.Contains(childKey[len(prefix):], "/") {
			return true
		}

		children = append(children, mm.metadata[id].Clone())
		return true
	})

	return children, nil
}

func (mm *MemoryMount) ReadSymlink(ctx context.Context, p string) (string, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	meta, err := mm.lookup(normalizeKey(p))
	if err != nil {
		return "", err
	}
	if !meta.IsSymlink() {
		return "", fmt.Errorf("%w: %s", data.ErrNotSymlink, p)
	}

	return meta.LinkTarget, nil
}

// lookup fetches metadata by key. Must be called with lock held.
func (mm *MemoryMount) lookup(key string) (*data.Metadata, error) {
	id, exists := mm.keys.Get(key)
	if !exists {
		return nil, fmt.Errorf("%w: %s", data.ErrNotExist, key)
	}

	meta, exists := mm.metadata[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", data.ErrNotExist, key)
	}

	return meta, nil
}

// normalizeKey converts a source path to the internal key form: no
// leading or trailing slashes, empty string for the root.
func normalizeKey(p string) string {
	p = path.Clean("/" + p)
	return strings.Trim(p, "/")
}

// parentKey returns the key of the containing directory.
func parentKey(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[:idx]
	}
	return ""
}
