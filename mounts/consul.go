package mounts

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	capi "github.com/hashicorp/consul/api"

	"github.com/mwantia/vls/data"
)

// ConsulMount keeps file metadata as JSON documents in the Consul KV
// store under a shared key prefix. Every entry, directories included,
// owns one KV pair so enumeration is a plain prefix scan.
type ConsulMount struct {
	mu sync.RWMutex

	client *capi.Client
	prefix string
}

// NewConsul creates a source backed by the Consul agent at address.
// All keys live below prefix, which is created on Open if missing.
func NewConsul(address, prefix string) (*ConsulMount, error) {
	config := capi.DefaultConfig()
	if address != "" {
		config.Address = address
	}

	client, err := capi.NewClient(config)
	if err != nil {
		return nil, err
	}

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "vls"
	}

	return &ConsulMount{
		client: client,
		prefix: prefix,
	}, nil
}

// Open verifies the agent is reachable and writes the root entry.
func (cm *ConsulMount) Open(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, err := cm.client.Status().Leader(); err != nil {
		return fmt.Errorf("%w: %v", data.ErrMountFailed, err)
	}

	pair, _, err := cm.client.KV().Get(cm.storeKey(""), readOptions(ctx))
	if err != nil {
		return err
	}
	if pair != nil {
		return nil
	}

	root := data.NewDirectoryMetadata("", 0o755)
	return cm.writeEntry(ctx, root)
}

func (cm *ConsulMount) Close(ctx context.Context) error {
	return nil
}

// Put stores metadata under its key. The parent entry must already
// exist and be a directory.
func (cm *ConsulMount) Put(ctx context.Context, meta *data.Metadata) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	key := normalizeKey(meta.Key)
	if key == "" {
		return fmt.Errorf("%w: empty key", data.ErrInvalidPath)
	}

	parent, err := cm.getEntry(ctx, parentKey(key))
	if err != nil {
		return fmt.Errorf("%w: parent of %s", data.ErrNotExist, key)
	}
	if !parent.IsDir() {
		return fmt.Errorf("%w: parent of %s", data.ErrNotDirectory, key)
	}

	return cm.writeEntry(ctx, meta.CloneWithKey(key))
}

func (cm *ConsulMount) CreateDirectory(ctx context.Context, p string, perm data.FileMode) error {
	return cm.Put(ctx, data.NewDirectoryMetadata(p, perm))
}

func (cm *ConsulMount) CreateFile(ctx context.Context, p string, size int64, perm data.FileMode) error {
	return cm.Put(ctx, data.NewFileMetadata(p, size, perm))
}

func (cm *ConsulMount) CreateSymlink(ctx context.Context, p, target string) error {
	return cm.Put(ctx, data.NewSymlinkMetadata(p, target))
}

func (cm *ConsulMount) StatMetadata(ctx context.Context, p string) (*data.Metadata, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	meta, err := cm.getEntry(ctx, normalizeKey(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", data.ErrNotExist, p)
	}

	return meta, nil
}

func (cm *ConsulMount) ReadDirectory(ctx context.Context, p string) ([]*data.Metadata, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	key := normalizeKey(p)
	meta, err := cm.getEntry(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", data.ErrNotExist, p)
	}
	if !meta.IsDir() {
		return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, p)
	}

	scanPrefix := cm.storeKey(key)
	if key != "" {
		scanPrefix += "/"
	}

	pairs, _, err := cm.client.KV().List(scanPrefix, readOptions(ctx))
	if err != nil {
		return nil, err
	}

	var children []*data.Metadata
	for _, pair := range pairs {
		childKey := strings.TrimPrefix(pair.Key, cm.prefix)
		childKey = strings.Trim(childKey, "/")
		if childKey == key || childKey == "" {
			continue
		}
		if parentKey(childKey) != key {
			continue
		}

		child := &data.Metadata{}
		if err := child.Unmarshal(pair.Value); err != nil {
			return nil, fmt.Errorf("decode entry %s: %w", childKey, err)
		}
		children = append(children, child)
	}

	return children, nil
}

func (cm *ConsulMount) ReadSymlink(ctx context.Context, p string) (string, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	meta, err := cm.getEntry(ctx, normalizeKey(p))
	if err != nil {
		return "", fmt.Errorf("%w: %s", data.ErrNotExist, p)
	}
	if !meta.IsSymlink() {
		return "", fmt.Errorf("%w: %s", data.ErrNotSymlink, p)
	}

	return meta.LinkTarget, nil
}

func (cm *ConsulMount) getEntry(ctx context.Context, key string) (*data.Metadata, error) {
	pair, _, err := cm.client.KV().Get(cm.storeKey(key), readOptions(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, data.ErrNotExist
	}

	meta := &data.Metadata{}
	if err := meta.Unmarshal(pair.Value); err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", key, err)
	}

	return meta, nil
}

func (cm *ConsulMount) writeEntry(ctx context.Context, meta *data.Metadata) error {
	value, err := meta.Marshal()
	if err != nil {
		return err
	}

	_, err = cm.client.KV().Put(&capi.KVPair{
		Key:   cm.storeKey(normalizeKey(meta.Key)),
		Value: value,
	}, writeOptions(ctx))

	return err
}

// storeKey maps an entry key to its KV location below the prefix.
func (cm *ConsulMount) storeKey(key string) string {
	if key == "" {
		return cm.prefix
	}

	return path.Join(cm.prefix, key)
}

func readOptions(ctx context.Context) *capi.QueryOptions {
	return (&capi.QueryOptions{}).WithContext(ctx)
}

func writeOptions(ctx context.Context) *capi.WriteOptions {
	return (&capi.WriteOptions{}).WithContext(ctx)
}
