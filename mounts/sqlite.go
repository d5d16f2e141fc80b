package mounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/mwantia/vls/data"
)

// SqliteMount keeps entry metadata in a SQLite database, one row per
// entry keyed by its relative path. Listing never touches file content;
// the table carries exactly the stat fields a listing needs.
type SqliteMount struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSqlite creates a SQLite-backed source. The dbPath can be ":memory:"
// for an in-memory database or a file path.
func NewSqlite(dbPath string) (*SqliteMount, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection, so the pool must not
	// grow beyond one.
	if strings.Contains(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	sm := &SqliteMount{db: db}
	if err := sm.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return sm, nil
}

func (sm *SqliteMount) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vls_entries (
		id TEXT PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		mode INTEGER NOT NULL,
		nlink INTEGER NOT NULL DEFAULT 1,
		uid INTEGER NOT NULL DEFAULT 0,
		gid INTEGER NOT NULL DEFAULT 0,
		size INTEGER NOT NULL DEFAULT 0,
		blocks INTEGER NOT NULL DEFAULT 0,
		modify_time INTEGER NOT NULL,
		link_target TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_vls_entries_key ON vls_entries(key);
	`

	_, err := sm.db.Exec(schema)
	return err
}

// Open ensures the root directory row exists.
func (sm *SqliteMount) Open(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var id string
	err := sm.db.QueryRowContext(ctx, "SELECT id FROM vls_entries WHERE key = ''").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return sm.insert(ctx, data.NewDirectoryMetadata("", 0o755))
	}

	return err
}

func (sm *SqliteMount) Close(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.db.Close()
}

// Put inserts or replaces an entry. The parent directory must already
// exist.
func (sm *SqliteMount) Put(ctx context.Context, meta *data.Metadata) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	key := normalizeKey(meta.Key)
	meta = meta.CloneWithKey(key)

	if key != "" {
		parent, err := sm.selectByKey(ctx, parentKey(key))
		if err != nil {
			return err
		}
		if !parent.IsDir() {
			return fmt.Errorf("%w: %s", data.ErrNotDirectory, parentKey(key))
		}
	}

	if _, err := sm.db.ExecContext(ctx, "DELETE FROM vls_entries WHERE key = ?", key); err != nil {
		return err
	}

	return sm.insert(ctx, meta)
}

func (sm *SqliteMount) insert(ctx context.Context, meta *data.Metadata) error {
	_, err := sm.db.ExecContext(ctx, `
		INSERT INTO vls_entries (id, key, mode, nlink, uid, gid, size, blocks, modify_time, link_target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Key, uint32(meta.Mode), meta.Nlink, meta.UID, meta.GID,
		meta.Size, meta.Blocks, meta.ModifyTime.UnixNano(), meta.LinkTarget,
	)
	return err
}

func (sm *SqliteMount) StatMetadata(ctx context.Context, p string) (*data.Metadata, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.selectByKey(ctx, normalizeKey(p))
}

func (sm *SqliteMount) ReadDirectory(ctx context.Context, p string) ([]*data.Metadata, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	key := normalizeKey(p)
	meta, err := sm.selectByKey(ctx, key)
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

	rows, err := sm.db.QueryContext(ctx, `
		SELECT id, key, mode, nlink, uid, gid, size, blocks, modify_time, link_target
		FROM vls_entries
		WHERE key != ? AND key LIKE ? || '%' AND key NOT LIKE ? || '%/%'
		ORDER BY key`,
		key, prefix, prefix,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []*data.Metadata
	for rows.Next() {
		child, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

func (sm *SqliteMount) ReadSymlink(ctx context.Context, p string) (string, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	meta, err := sm.selectByKey(ctx, normalizeKey(p))
	if err != nil {
		return "", err
	}
	if !meta.IsSymlink() {
		return "", fmt.Errorf("%w: %s", data.ErrNotSymlink, p)
	}

	return meta.LinkTarget, nil
}

// selectByKey fetches one entry row. Must be called with lock held.
func (sm *SqliteMount) selectByKey(ctx context.Context, key string) (*data.Metadata, error) {
	row := sm.db.QueryRowContext(ctx, `
		SELECT id, key, mode, nlink, uid, gid, size, blocks, modify_time, link_target
		FROM vls_entries WHERE key = ?`,
		key,
	)

	meta, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", data.ErrNotExist, key)
	}

	return meta, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*data.Metadata, error) {
	var meta data.Metadata
	var mode uint32
	var modifyTime int64

	err := row.Scan(&meta.ID, &meta.Key, &mode, &meta.Nlink, &meta.UID, &meta.GID,
		&meta.Size, &meta.Blocks, &modifyTime, &meta.LinkTarget)
	if err != nil {
		return nil, err
	}

	meta.Mode = data.FileMode(mode)
	meta.ModifyTime = time.Unix(0, modifyTime)

	return &meta, nil
}
