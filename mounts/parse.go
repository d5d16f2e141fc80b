package mounts

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mwantia/vls/data"
)

// Source mirrors the root package contract so addresses can be parsed
// without an import cycle.
type Source interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	StatMetadata(ctx context.Context, path string) (*data.Metadata, error)
	ReadDirectory(ctx context.Context, path string) ([]*data.Metadata, error)
	ReadSymlink(ctx context.Context, path string) (string, error)
}

// ParseSourceAddress turns a mount address into a ready source.
//
// Supported schemes:
//
//	local:///var/data          host filesystem subtree
//	memory:                    in-memory tree
//	sqlite:///tmp/tree.db      sqlite database file
//	postgres://user:pw@host/db postgres connection string
//	s3://key:secret@host/bucket?ssl=true
//	consul://host:8500/prefix
func ParseSourceAddress(ctx context.Context, address string) (Source, error) {
	scheme, rest, ok := strings.Cut(address, ":")
	if !ok {
		return nil, fmt.Errorf("%w: missing scheme in %q", data.ErrInvalidPath, address)
	}

	switch scheme {
	case "local":
		root := strings.TrimPrefix(rest, "//")
		if root == "" {
			return nil, fmt.Errorf("%w: local address needs a root path", data.ErrInvalidPath)
		}
		return NewLocal(root), nil

	case "memory":
		return NewMemory(), nil

	case "sqlite":
		dbPath := strings.TrimPrefix(rest, "//")
		if dbPath == "" {
			return nil, fmt.Errorf("%w: sqlite address needs a database path", data.ErrInvalidPath)
		}
		return NewSqlite(dbPath)

	case "postgres", "postgresql":
		return NewPostgres(ctx, address)

	case "s3":
		return parseS3Address(address)

	case "consul":
		return parseConsulAddress(address)

	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", data.ErrInvalidPath, scheme)
	}
}

func parseS3Address(address string) (*S3Mount, error) {
	parsed, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrInvalidPath, err)
	}
	if parsed.User == nil {
		return nil, fmt.Errorf("%w: s3 address needs key:secret credentials", data.ErrInvalidPath)
	}

	secretKey, _ := parsed.User.Password()
	bucketName := strings.Trim(parsed.Path, "/")
	if bucketName == "" {
		return nil, fmt.Errorf("%w: s3 address needs a bucket name", data.ErrInvalidPath)
	}

	useSsl := parsed.Query().Get("ssl") == "true"
	return NewS3(parsed.Host, bucketName, parsed.User.Username(), secretKey, useSsl)
}

func parseConsulAddress(address string) (*ConsulMount, error) {
	parsed, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrInvalidPath, err)
	}

	return NewConsul(parsed.Host, parsed.Path)
}
