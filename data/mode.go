package data

import (
	"fmt"
)

// FileMode is the raw mode word of a filesystem entry as returned by an
// lstat-style call. It combines a file type field, the setuid/setgid/sticky
// bits and the nine standard permission bits, following the Unix st_mode
// layout.
type FileMode uint32

// Type and permission masks matching the Unix st_mode bit layout.
const (
	TypeMask        FileMode = 0o170000
	TypeNamedPipe   FileMode = 0o010000 // p: FIFO
	TypeCharDevice  FileMode = 0o020000 // c: character device
	TypeDirectory   FileMode = 0o040000 // d: directory
	TypeBlockDevice FileMode = 0o060000 // b: block device
	TypeRegular     FileMode = 0o100000 // -: regular file
	TypeSymlink     FileMode = 0o120000 // l: symbolic link
	TypeSocket      FileMode = 0o140000 // s: Unix domain socket

	ModeSetuid FileMode = 0o4000
	ModeSetgid FileMode = 0o2000
	ModeSticky FileMode = 0o1000

	ModePerm FileMode = 0o777
)

// typeSymbols maps the two leading digits of the six-digit octal rendering
// of a mode word to the type symbol shown in a long listing. A mode whose
// type field is missing from this table is not silently defaulted; decoding
// reports ErrUnknownType instead.
var typeSymbols = map[string]string{
	"01": "p",
	"02": "c",
	"04": "d",
	"06": "b",
	"10": "-",
	"12": "l",
	"14": "s",
}

// IsDir reports whether m describes a directory.
func (m FileMode) IsDir() bool {
	return m&TypeMask == TypeDirectory
}

// IsRegular reports whether m describes a regular file.
func (m FileMode) IsRegular() bool {
	return m&TypeMask == TypeRegular
}

// IsSymlink reports whether m describes a symbolic link.
func (m FileMode) IsSymlink() bool {
	return m&TypeMask == TypeSymlink
}

// Perm returns the standard permission bits in m (the lower 9 bits).
func (m FileMode) Perm() FileMode {
	return m & ModePerm
}

// octal renders m as a fixed-width six-digit octal string. The first two
// digits carry the type field, the third the special-permission bits and
// the last three the owner/group/other permission triplets.
func (m FileMode) octal() string {
	return fmt.Sprintf("%06o", uint32(m))
}

// TypeSymbol returns the single-character type symbol for m.
// Returns ErrUnknownType if the type field matches none of the seven
// recognized values.
func (m FileMode) TypeSymbol() (string, error) {
	field := m.octal()[:2]
	symbol, ok := typeSymbols[field]
	if !ok {
		return "", fmt.Errorf("%w: type field %q in mode %s", ErrUnknownType, field, m.octal())
	}
	return symbol, nil
}

// Permissions returns the nine-character permission string for m, in the
// fixed order owner/group/other with r, w, x per triplet. The
// setuid/setgid/sticky bits overlay the execute position of their
// respective triplet: a set bit turns x into s (or t for sticky) and -
// into S (or T).
func (m FileMode) Permissions() string {
	oct := m.octal()
	special := oct[2] - '0'

	var buf [9]byte
	for i := 0; i < 3; i++ {
		digit := oct[3+i] - '0'
		for j, c := range permLetters {
			if digit&(4>>j) != 0 {
				buf[i*3+j] = c
			} else {
				buf[i*3+j] = '-'
			}
		}
	}

	overlay(&buf, special&4 != 0, 2, 's', 'S')
	overlay(&buf, special&2 != 0, 5, 's', 'S')
	overlay(&buf, special&1 != 0, 8, 't', 'T')

	return string(buf[:])
}

// permLetters holds the permission letters in their fixed bit order.
var permLetters = [3]byte{'r', 'w', 'x'}

// overlay replaces the execute-position character at pos when the
// corresponding special bit is set. Other positions are never touched.
func overlay(buf *[9]byte, set bool, pos int, execSet, execClear byte) {
	if !set {
		return
	}
	if buf[pos] == 'x' {
		buf[pos] = execSet
	} else {
		buf[pos] = execClear
	}
}

// Decode splits m into its type symbol and permission string.
func (m FileMode) Decode() (string, string, error) {
	symbol, err := m.TypeSymbol()
	if err != nil {
		return "", "", err
	}
	return symbol, m.Permissions(), nil
}

// String returns the full symbolic rendering of m, type symbol included.
// Unknown type fields render as "?" here; callers that must reject them
// use Decode or TypeSymbol instead.
func (m FileMode) String() string {
	symbol, err := m.TypeSymbol()
	if err != nil {
		symbol = "?"
	}
	return symbol + m.Permissions()
}
