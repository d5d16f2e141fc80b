package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteDetail_TotalAndAlignment(t *testing.T) {
	rows := []*Row{
		{
			Type: "-", Permissions: "rw-r--r--", Links: "1",
			Owner: "alice", Group: "staff", Size: "1024",
			Time: " 3  2 09:30", Name: "notes.txt", Blocks: 8,
		},
		{
			Type: "d", Permissions: "rwxr-xr-x", Links: "12",
			Owner: "root", Group: "wheel", Size: "96",
			Time: "10  1 2025", Name: "src", Blocks: 0,
		},
	}

	var buf bytes.Buffer
	if err := WriteDetail(&buf, rows); err != nil {
		t.Fatalf("WriteDetail failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 4 || lines[3] != "" {
		t.Fatalf("Expected 3 lines plus terminator, got %q", buf.String())
	}

	if lines[0] != "total 8" {
		t.Errorf("Expected total 8, got %q", lines[0])
	}

	expected := []string{
		"-rw-r--r--   1 alice  staff  1024  3  2 09:30 notes.txt",
		"drwxr-xr-x  12 root   wheel    96  10  1 2025 src      ",
	}
	for i, want := range expected {
		if lines[i+1] != want {
			t.Errorf("Line %d:\nexpected %q\ngot      %q", i+1, want, lines[i+1])
		}
	}
}

func TestWriteDetail_SingleRowWidths(t *testing.T) {
	rows := []*Row{
		{
			Type: "-", Permissions: "rw-r--r--", Links: "1",
			Owner: "root", Group: "root", Size: "0",
			Time: " 1  1 00:00", Name: "empty", Blocks: 0,
		},
	}

	var buf bytes.Buffer
	if err := WriteDetail(&buf, rows); err != nil {
		t.Fatalf("WriteDetail failed: %v", err)
	}

	expected := "total 0\n-rw-r--r--  1 root  root  0  1  1 00:00 empty\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}
