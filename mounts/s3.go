package mounts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mwantia/vls/data"
)

// S3Mount lists the contents of an S3 bucket. Objects appear as regular
// files and common prefixes as directories; since object stores carry no
// Unix metadata, modes and ownership are synthesized with fixed
// defaults and block counts derive from the object size.
type S3Mount struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
}

// S3 sources synthesize these mode words for their entries.
const (
	s3FileMode      = data.TypeRegular | 0o644
	s3DirectoryMode = data.TypeDirectory | 0o755
)

// NewS3 creates a source over one bucket of an S3-compatible endpoint.
func NewS3(endpoint, bucketName, accessKey, secretKey string, useSsl bool) (*S3Mount, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Mount{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// Open verifies the bucket exists.
func (sm *S3Mount) Open(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	exists, err := sm.client.BucketExists(ctx, sm.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: bucket %s", data.ErrMountFailed, sm.bucketName)
	}

	return nil
}

func (sm *S3Mount) Close(ctx context.Context) error {
	return nil
}

func (sm *S3Mount) StatMetadata(ctx context.Context, p string) (*data.Metadata, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	key := normalizeKey(p)
	if key == "" {
		return sm.directoryMetadata(""), nil
	}

	info, err := sm.client.StatObject(ctx, sm.bucketName, key, minio.StatObjectOptions{})
	if err == nil {
		return sm.objectMetadata(key, info.Size, info.LastModified), nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return nil, err
	}

	// No object under this key; it still lists as a directory when
	// objects exist below it.
	hasChildren := false
	for object := range sm.client.ListObjects(ctx, sm.bucketName, minio.ListObjectsOptions{
		Prefix:  key + "/",
		MaxKeys: 1,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}
		hasChildren = true
	}
	if !hasChildren {
		return nil, fmt.Errorf("%w: %s", data.ErrNotExist, p)
	}

	return sm.directoryMetadata(key), nil
}

func (sm *S3Mount) ReadDirectory(ctx context.Context, p string) ([]*data.Metadata, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	meta, err := sm.statMetadataLocked(ctx, p)
	if err != nil {
		return nil, err
	}
	if !meta.IsDir() {
		return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, p)
	}

	prefix := normalizeKey(p)
	if prefix != "" {
		prefix += "/"
	}

	var children []*data.Metadata
	for object := range sm.client.ListObjects(ctx, sm.bucketName, minio.ListObjectsOptions{
		Prefix: prefix,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}

		key := strings.TrimSuffix(object.Key, "/")
		if key == "" || key == normalizeKey(p) {
			continue
		}

		if strings.HasSuffix(object.Key, "/") {
			children = append(children, sm.directoryMetadata(key))
		} else {
			children = append(children, sm.objectMetadata(key, object.Size, object.LastModified))
		}
	}

	return children, nil
}

// ReadSymlink always fails; object stores have no symbolic links.
func (sm *S3Mount) ReadSymlink(ctx context.Context, p string) (string, error) {
	return "", fmt.Errorf("%w: %s", data.ErrNotSymlink, p)
}

// statMetadataLocked is StatMetadata without the lock, for callers that
// already hold it.
func (sm *S3Mount) statMetadataLocked(ctx context.Context, p string) (*data.Metadata, error) {
	key := normalizeKey(p)
	if key == "" {
		return sm.directoryMetadata(""), nil
	}

	info, err := sm.client.StatObject(ctx, sm.bucketName, key, minio.StatObjectOptions{})
	if err == nil {
		return sm.objectMetadata(key, info.Size, info.LastModified), nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return nil, err
	}

	return sm.directoryMetadata(key), nil
}

func (sm *S3Mount) objectMetadata(key string, size int64, modified time.Time) *data.Metadata {
	return &data.Metadata{
		Key:        key,
		Mode:       s3FileMode,
		Nlink:      1,
		Size:       size,
		Blocks:     data.SizeToBlocks(size),
		ModifyTime: modified,
	}
}

func (sm *S3Mount) directoryMetadata(key string) *data.Metadata {
	return &data.Metadata{
		Key:        key,
		Mode:       s3DirectoryMode,
		Nlink:      2,
		ModifyTime: time.Now(),
	}
}
