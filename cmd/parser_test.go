package cmd

import (
	"slices"
	"testing"
)

func testFlagSet() *CommandFlagSet {
	return &CommandFlagSet{
		Flags: map[string]*CommandFlag{
			"long": {
				Name:    "long",
				Short:   "l",
				Type:    "bool",
				Default: false,
			},
			"mount": {
				Name:     "mount",
				Short:    "m",
				Type:     "string",
				Multiple: true,
			},
			"level": {
				Name:    "level",
				Type:    "string",
				Default: "info",
			},
		},
	}
}

func TestParserDefaults(t *testing.T) {
	args, err := NewParser(testFlagSet()).Parse(nil)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if args.Bool("long") {
		t.Error("expected long to default to false")
	}
	if args.String("level") != "info" {
		t.Errorf("expected level default info, got %q", args.String("level"))
	}
	if len(args.Args) != 0 {
		t.Errorf("expected no positional arguments, got %v", args.Args)
	}
}

func TestParserLongFlags(t *testing.T) {
	args, err := NewParser(testFlagSet()).Parse([]string{"--long", "--level=debug", "target"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if !args.Bool("long") {
		t.Error("expected long to be set")
	}
	if args.String("level") != "debug" {
		t.Errorf("expected level debug, got %q", args.String("level"))
	}
	if !slices.Equal(args.Args, []string{"target"}) {
		t.Errorf("expected positional [target], got %v", args.Args)
	}
}

func TestParserValueFromNextArgument(t *testing.T) {
	args, err := NewParser(testFlagSet()).Parse([]string{"--level", "warn", "path"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if args.String("level") != "warn" {
		t.Errorf("expected level warn, got %q", args.String("level"))
	}
	if !slices.Equal(args.Args, []string{"path"}) {
		t.Errorf("expected positional [path], got %v", args.Args)
	}
}

func TestParserShortFlags(t *testing.T) {
	args, err := NewParser(testFlagSet()).Parse([]string{"-l", "dir"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if !args.Bool("long") {
		t.Error("expected long to be set via -l")
	}
	if !slices.Equal(args.Args, []string{"dir"}) {
		t.Errorf("expected positional [dir], got %v", args.Args)
	}
}

func TestParserMultipleFlag(t *testing.T) {
	args, err := NewParser(testFlagSet()).Parse([]string{
		"--mount", "a=memory:",
		"-m", "b=memory:",
	})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	want := []string{"a=memory:", "b=memory:"}
	if !slices.Equal(args.Strings("mount"), want) {
		t.Errorf("expected mounts %v, got %v", want, args.Strings("mount"))
	}
}

func TestParserTerminator(t *testing.T) {
	args, err := NewParser(testFlagSet()).Parse([]string{"--long", "--", "--level", "-l"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if !args.Bool("long") {
		t.Error("expected long to be set before terminator")
	}
	if !slices.Equal(args.Args, []string{"--level", "-l"}) {
		t.Errorf("expected literal positionals after --, got %v", args.Args)
	}
}

func TestParserErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown long flag":  {"--verbose"},
		"unknown short flag": {"-x"},
		"missing value":      {"--level"},
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewParser(testFlagSet()).Parse(raw); err == nil {
				t.Errorf("expected parse error for %v", raw)
			}
		})
	}
}

func TestParserRequiredFlag(t *testing.T) {
	flagSet := &CommandFlagSet{
		Flags: map[string]*CommandFlag{
			"target": {
				Name:     "target",
				Type:     "string",
				Required: true,
			},
		},
	}

	if _, err := NewParser(flagSet).Parse(nil); err == nil {
		t.Error("expected error for missing required flag")
	}

	args, err := NewParser(flagSet).Parse([]string{"--target", "somewhere"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if args.String("target") != "somewhere" {
		t.Errorf("expected target somewhere, got %q", args.String("target"))
	}
}
