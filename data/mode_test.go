package data

import (
	"errors"
	"strings"
	"testing"
)

func TestFileMode_TypeSymbols(t *testing.T) {
	cases := map[string]struct {
		mode   FileMode
		symbol string
	}{
		"fifo":         {TypeNamedPipe | 0o644, "p"},
		"char-device":  {TypeCharDevice | 0o620, "c"},
		"directory":    {TypeDirectory | 0o755, "d"},
		"block-device": {TypeBlockDevice | 0o660, "b"},
		"regular":      {TypeRegular | 0o644, "-"},
		"symlink":      {TypeSymlink | 0o777, "l"},
		"socket":       {TypeSocket | 0o755, "s"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			symbol, err := tc.mode.TypeSymbol()
			if err != nil {
				t.Fatalf("TypeSymbol failed: %v", err)
			}
			if symbol != tc.symbol {
				t.Errorf("Expected %q, got %q", tc.symbol, symbol)
			}
		})
	}
}

func TestFileMode_UnknownType(t *testing.T) {
	for _, mode := range []FileMode{0, 0o644, 0o030000 | 0o644, 0o160000} {
		if _, err := mode.TypeSymbol(); !errors.Is(err, ErrUnknownType) {
			t.Errorf("Mode %06o: expected ErrUnknownType, got %v", uint32(mode), err)
		}
		if _, _, err := mode.Decode(); !errors.Is(err, ErrUnknownType) {
			t.Errorf("Mode %06o: Decode expected ErrUnknownType, got %v", uint32(mode), err)
		}
	}
}

func TestFileMode_Permissions(t *testing.T) {
	cases := map[string]struct {
		mode FileMode
		want string
	}{
		"all":            {0o777, "rwxrwxrwx"},
		"none":           {0, "---------"},
		"typical-file":   {0o644, "rw-r--r--"},
		"typical-dir":    {0o755, "rwxr-xr-x"},
		"setuid-on-x":    {ModeSetuid | 0o700, "rws------"},
		"setuid-no-x":    {ModeSetuid | 0o600, "rwS------"},
		"setgid-on-x":    {ModeSetgid | 0o070, "---rws---"},
		"setgid-no-x":    {ModeSetgid | 0o060, "---rwS---"},
		"sticky-on-x":    {ModeSticky | 0o007, "------rwt"},
		"sticky-no-x":    {ModeSticky | 0o006, "------rwT"},
		"all-specials":   {ModeSetuid | ModeSetgid | ModeSticky | 0o777, "rwsrwsrwt"},
		"specials-alone": {ModeSetuid | ModeSetgid | ModeSticky, "--S--S--T"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.mode.Permissions(); got != tc.want {
				t.Errorf("Mode %06o: expected %q, got %q", uint32(tc.mode), tc.want, got)
			}
		})
	}
}

// TestFileMode_PermissionsExhaustive checks every combination of the nine
// base permission bits and the three special bits against an independent
// bit-by-bit construction of the expected string.
func TestFileMode_PermissionsExhaustive(t *testing.T) {
	for special := FileMode(0); special < 8; special++ {
		for perm := FileMode(0); perm < 0o1000; perm++ {
			mode := special<<9 | perm

			want := expectedPermissions(mode)
			got := mode.Permissions()

			if got != want {
				t.Fatalf("Mode %06o: expected %q, got %q", uint32(mode), want, got)
			}
			if len(got) != 9 {
				t.Fatalf("Mode %06o: permission string length %d", uint32(mode), len(got))
			}
		}
	}
}

// expectedPermissions builds the reference string with plain conditionals,
// independent of the octal-digit decoding under test.
func expectedPermissions(mode FileMode) string {
	var b strings.Builder

	for shift := 8; shift >= 0; shift-- {
		letter := permLetters[(8-shift)%3]
		if mode&(1<<shift) != 0 {
			b.WriteByte(letter)
		} else {
			b.WriteByte('-')
		}
	}

	out := []byte(b.String())
	apply := func(pos int, bit FileMode, execSet, execClear byte) {
		if mode&bit == 0 {
			return
		}
		if out[pos] == 'x' {
			out[pos] = execSet
		} else {
			out[pos] = execClear
		}
	}
	apply(2, ModeSetuid, 's', 'S')
	apply(5, ModeSetgid, 's', 'S')
	apply(8, ModeSticky, 't', 'T')

	return string(out)
}

func TestFileMode_Predicates(t *testing.T) {
	dir := TypeDirectory | 0o755
	if !dir.IsDir() || dir.IsRegular() || dir.IsSymlink() {
		t.Error("Directory predicates wrong")
	}

	file := TypeRegular | 0o644
	if !file.IsRegular() || file.IsDir() || file.IsSymlink() {
		t.Error("Regular file predicates wrong")
	}

	link := TypeSymlink | 0o777
	if !link.IsSymlink() || link.IsDir() || link.IsRegular() {
		t.Error("Symlink predicates wrong")
	}

	if file.Perm() != 0o644 {
		t.Errorf("Expected perm 644, got %o", uint32(file.Perm()))
	}
}

func TestFileMode_String(t *testing.T) {
	if got := (TypeDirectory | 0o755).String(); got != "drwxr-xr-x" {
		t.Errorf("Expected drwxr-xr-x, got %q", got)
	}
	if got := FileMode(0o644).String(); got != "?rw-r--r--" {
		t.Errorf("Expected ?rw-r--r--, got %q", got)
	}
}
