package identity

import (
	"errors"
	"os"
	"os/user"
	"testing"
)

func TestStatic_Lookup(t *testing.T) {
	resolver := NewStatic(
		map[uint32]string{0: "root", 1000: "alice"},
		map[uint32]string{0: "wheel", 1000: "staff"},
	)

	name, err := resolver.LookupUser(1000)
	if err != nil {
		t.Fatalf("LookupUser failed: %v", err)
	}
	if name != "alice" {
		t.Errorf("Expected alice, got %q", name)
	}

	group, err := resolver.LookupGroup(0)
	if err != nil {
		t.Fatalf("LookupGroup failed: %v", err)
	}
	if group != "wheel" {
		t.Errorf("Expected wheel, got %q", group)
	}
}

func TestStatic_UnknownID(t *testing.T) {
	resolver := NewStatic(nil, nil)

	if _, err := resolver.LookupUser(42); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Expected ErrUnknownID, got %v", err)
	}
	if _, err := resolver.LookupGroup(42); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Expected ErrUnknownID, got %v", err)
	}
}

func TestOS_LookupCurrentUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("No current user available: %v", err)
	}

	resolver := NewOS()

	name, err := resolver.LookupUser(uint32(os.Getuid()))
	if err != nil {
		t.Fatalf("LookupUser failed: %v", err)
	}
	if name != current.Username {
		t.Errorf("Expected %q, got %q", current.Username, name)
	}
}
