package identity

import (
	"fmt"
	"os/user"
	"strconv"
)

// OS resolves IDs through the operating system's account database.
type OS struct{}

// NewOS creates a resolver backed by os/user lookups.
func NewOS() *OS {
	return &OS{}
}

func (o *OS) LookupUser(uid uint32) (string, error) {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", fmt.Errorf("%w: uid %d: %v", ErrUnknownID, uid, err)
	}
	return u.Username, nil
}

func (o *OS) LookupGroup(gid uint32) (string, error) {
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return "", fmt.Errorf("%w: gid %d: %v", ErrUnknownID, gid, err)
	}
	return g.Name, nil
}
