package vls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/mwantia/vls/cmd"
	"github.com/mwantia/vls/data"
	"github.com/mwantia/vls/log"
)

// FileSystem is the mount table that listings run against. Sources are
// attached at paths and every metadata operation is delegated to the
// mount with the longest matching prefix. All operations are thread-safe.
type FileSystem struct {
	mu  sync.RWMutex
	log *log.Logger

	mounts   map[string]*mountEntry
	commands map[string]cmd.Command
}

type mountEntry struct {
	source Source
	info   data.MountInfo
}

// New creates an empty mount table.
func New(opts ...Option) (*FileSystem, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return &FileSystem{
		log:      log.NewLogger("vls", options.LogLevel, options.LogFile, options.NoTerminalLog),
		mounts:   make(map[string]*mountEntry),
		commands: make(map[string]cmd.Command),
	}, nil
}

// Mount attaches a source at the specified path and opens it.
func (v *FileSystem) Mount(ctx context.Context, path string, source Source, opts ...MountOption) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	path = cleanPath(path)

	if _, exists := v.mounts[path]; exists {
		return fmt.Errorf("%w: /%s", data.ErrAlreadyMounted, path)
	}

	info := data.MountInfo{
		Path:      "/" + path,
		MountedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&info)
	}

	if err := source.Open(ctx); err != nil {
		return fmt.Errorf("%w: /%s: %v", data.ErrMountFailed, path, err)
	}

	v.mounts[path] = &mountEntry{
		source: source,
		info:   info,
	}

	v.log.Debug("mounted source at /%s", path)
	return nil
}

// Unmount detaches and closes the source at the specified path.
// Returns data.ErrNotMounted if the path is not mounted and
// data.ErrMountBusy if child mounts exist.
func (v *FileSystem) Unmount(ctx context.Context, path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	path = cleanPath(path)

	entry, exists := v.mounts[path]
	if !exists {
		return fmt.Errorf("%w: /%s", data.ErrNotMounted, path)
	}

	if v.hasChildMounts(path) {
		return fmt.Errorf("%w: /%s has child mounts", data.ErrMountBusy, path)
	}

	if err := entry.source.Close(ctx); err != nil {
		return fmt.Errorf("%w: /%s: %v", data.ErrUnmountFailed, path, err)
	}

	delete(v.mounts, path)

	v.log.Debug("unmounted source at /%s", path)
	return nil
}

// Mounts returns information about all mounted sources, deepest first.
func (v *FileSystem) Mounts() []data.MountInfo {
	v.mu.RLock()
	defer v.mu.RUnlock()

	infos := make([]data.MountInfo, 0, len(v.mounts))
	for _, entry := range v.mounts {
		infos = append(infos, entry.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return len(infos[i].Path) > len(infos[j].Path)
	})

	return infos
}

// Shutdown unmounts all sources. Mounts are closed deepest first to
// avoid dependency issues.
func (v *FileSystem) Shutdown(ctx context.Context) error {
	for _, info := range v.Mounts() {
		if err := v.Unmount(ctx, info.Path); err != nil {
			return err
		}
	}
	return nil
}

// resolve finds the mount responsible for path and the path relative to
// its root.
func (v *FileSystem) resolve(path string) (Source, string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	path = cleanPath(path)

	bestMatch := ""
	found := false
	for mountPoint := range v.mounts {
		if hasPrefix(path, mountPoint) {
			if !found || len(mountPoint) > len(bestMatch) {
				bestMatch = mountPoint
				found = true
			}
		}
	}

	if !found {
		return nil, "", fmt.Errorf("%w: /%s", data.ErrNotMounted, path)
	}

	return v.mounts[bestMatch].source, trimPrefix(path, bestMatch), nil
}

// StatMetadata returns entry metadata for the given path without
// following a final symlink.
func (v *FileSystem) StatMetadata(ctx context.Context, path string) (*data.Metadata, error) {
	source, rel, err := v.resolve(path)
	if err != nil {
		return nil, err
	}

	return source.StatMetadata(ctx, rel)
}

// LookupMetadata checks if an entry exists at the given path. Dangling
// symlinks count as existing since the stat does not follow them.
func (v *FileSystem) LookupMetadata(ctx context.Context, path string) (bool, error) {
	if _, err := v.StatMetadata(ctx, path); err != nil {
		if errors.Is(err, data.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadDirectory returns the immediate children of the directory at path
// in enumeration order.
func (v *FileSystem) ReadDirectory(ctx context.Context, path string) ([]*data.Metadata, error) {
	source, rel, err := v.resolve(path)
	if err != nil {
		return nil, err
	}

	return source.ReadDirectory(ctx, rel)
}

// ReadSymlink returns the target of the symbolic link at path, one level
// of indirection only.
func (v *FileSystem) ReadSymlink(ctx context.Context, path string) (string, error) {
	source, rel, err := v.resolve(path)
	if err != nil {
		return "", err
	}

	return source.ReadSymlink(ctx, rel)
}

// RegisterCommand registers a command so it can be run through Execute.
func (v *FileSystem) RegisterCommand(command cmd.Command) error {
	if command == nil {
		return fmt.Errorf("command cannot be nil")
	}

	name := command.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.commands[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	v.commands[name] = command
	return nil
}

// UnregisterCommand removes a registered command.
func (v *FileSystem) UnregisterCommand(name string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.commands[name]; !exists {
		return false, nil
	}

	delete(v.commands, name)
	return true, nil
}

// Execute parses args for the named command and runs it, writing its
// output to w. The first argument selects the command.
func (v *FileSystem) Execute(ctx context.Context, w io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("no command given")
	}

	v.mu.RLock()
	command, exists := v.commands[args[0]]
	v.mu.RUnlock()

	if !exists {
		return 1, fmt.Errorf("command not found: %s", args[0])
	}

	flagSet := command.GetFlags()
	if flagSet == nil {
		flagSet = &cmd.CommandFlagSet{}
	}

	parsed, err := cmd.NewParser(flagSet).Parse(args[1:])
	if err != nil {
		return 1, err
	}

	return command.Execute(ctx, v, parsed, w)
}

// hasChildMounts checks if any mounts exist under the given parent path.
// Must be called with lock held.
func (v *FileSystem) hasChildMounts(parent string) bool {
	for mountPoint := range v.mounts {
		if mountPoint != parent && hasPrefix(mountPoint, parent) {
			return true
		}
	}
	return false
}
