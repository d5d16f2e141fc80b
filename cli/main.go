package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	vls "github.com/mwantia/vls"
	"github.com/mwantia/vls/cmd"
	"github.com/mwantia/vls/cmd/builtin"
	"github.com/mwantia/vls/data"
	"github.com/mwantia/vls/identity"
	"github.com/mwantia/vls/log"
	"github.com/mwantia/vls/mounts"
)

func cliFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"long": {
				Name:        "long",
				Short:       "l",
				Type:        "bool",
				Default:     false,
				Description: "Use the long-format detail listing",
			},
			"mount": {
				Name:        "mount",
				Short:       "m",
				Type:        "string",
				Multiple:    true,
				Description: "Attach a source, formatted as path=address",
			},
			"log-level": {
				Name:        "log-level",
				Type:        "string",
				Default:     "info",
				Description: "Log verbosity (debug, info, warn, error)",
			},
			"log-file": {
				Name:        "log-file",
				Type:        "string",
				Description: "Write logs to this file with rotation",
			},
		},
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, argv []string) int {
	args, err := cmd.NewParser(cliFlags()).Parse(argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vls: %v\n", err)
		return 2
	}

	level, err := log.Parse(args.String("log-level"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vls: %v\n", err)
		return 2
	}

	opts := []vls.Option{vls.WithLogLevel(level)}
	if file := args.String("log-file"); file != "" {
		opts = append(opts, vls.WithLogFile(file))
	}

	fs, err := vls.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vls: %v\n", err)
		return 1
	}
	defer fs.Shutdown(ctx)

	target := "."
	if len(args.Args) > 0 {
		target = args.Args[0]
	}

	addresses := args.Strings("mount")
	if len(addresses) == 0 {
		// Without explicit mounts the whole host filesystem is attached
		// at the root, so any absolute path lists directly.
		if target, err = filepath.Abs(target); err != nil {
			fmt.Fprintf(os.Stderr, "vls: %v\n", err)
			return 1
		}
		if err := fs.Mount(ctx, "/", mounts.NewLocal("/"), vls.WithAddress("local:///")); err != nil {
			fmt.Fprintf(os.Stderr, "vls: %v\n", err)
			return 1
		}
	}

	for _, attach := range addresses {
		path, address, ok := strings.Cut(attach, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "vls: invalid mount %q, expected path=address\n", attach)
			return 2
		}

		source, err := mounts.ParseSourceAddress(ctx, address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vls: %v\n", err)
			return 1
		}
		if err := fs.Mount(ctx, path, source, vls.WithAddress(address)); err != nil {
			fmt.Fprintf(os.Stderr, "vls: %v\n", err)
			return 1
		}
	}

	if err := fs.RegisterCommand(builtin.NewLs(identity.NewOS())); err != nil {
		fmt.Fprintf(os.Stderr, "vls: %v\n", err)
		return 1
	}
	if err := fs.RegisterCommand(&builtin.MountsCommand{}); err != nil {
		fmt.Fprintf(os.Stderr, "vls: %v\n", err)
		return 1
	}

	lsArgs := []string{"ls"}
	if args.Bool("long") {
		lsArgs = append(lsArgs, "--long")
	}
	lsArgs = append(lsArgs, target)

	code, err := fs.Execute(ctx, os.Stdout, lsArgs...)
	if err != nil {
		if errors.Is(err, data.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "vls: %s: no such file or directory\n", target)
		} else {
			fmt.Fprintf(os.Stderr, "vls: %v\n", err)
		}
		return max(code, 1)
	}

	return code
}
