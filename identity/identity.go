package identity

import (
	"errors"
	"fmt"
)

// Resolver translates numeric owner and group IDs into names.
// A missing mapping is an error; callers never fall back to rendering
// the numeric ID.
type Resolver interface {
	// LookupUser returns the user name for a numeric user ID.
	LookupUser(uid uint32) (string, error)

	// LookupGroup returns the group name for a numeric group ID.
	LookupGroup(gid uint32) (string, error)
}

// ErrUnknownID is returned when an ID has no resolvable name.
var ErrUnknownID = errors.New("identity: no name for id")

// Static resolves IDs from fixed in-memory tables. Virtual sources and
// tests use it in place of the OS account database.
type Static struct {
	Users  map[uint32]string
	Groups map[uint32]string
}

// NewStatic creates a static resolver over the given tables.
// Nil maps are treated as empty.
func NewStatic(users, groups map[uint32]string) *Static {
	return &Static{
		Users:  users,
		Groups: groups,
	}
}

func (s *Static) LookupUser(uid uint32) (string, error) {
	name, ok := s.Users[uid]
	if !ok {
		return "", fmt.Errorf("%w: uid %d", ErrUnknownID, uid)
	}
	return name, nil
}

func (s *Static) LookupGroup(gid uint32) (string, error) {
	name, ok := s.Groups[gid]
	if !ok {
		return "", fmt.Errorf("%w: gid %d", ErrUnknownID, gid)
	}
	return name, nil
}
