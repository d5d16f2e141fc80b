package builtin

import (
	"context"
	"io"

	"github.com/mwantia/vls/cmd"
	"github.com/mwantia/vls/identity"
	"github.com/mwantia/vls/listing"
)

// LsCommand lists the contents of a path, either as a compact name grid
// or, with -l, as a long-format detail table.
type LsCommand struct {
	ids identity.Resolver
}

// NewLs creates the ls command using the given identity resolver for
// owner and group names in detail mode.
func NewLs(ids identity.Resolver) *LsCommand {
	return &LsCommand{
		ids: ids,
	}
}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (ls *LsCommand) Description() string {
	return "List the entries of a directory or a single file"
}

// Usage returns a usage string for help
func (ls *LsCommand) Usage() string {
	return "ls [-l] [path]"
}

// Execute runs the command with parsed arguments
func (ls *LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	target := "/"
	if len(args.Args) > 0 {
		target = args.Args[0]
	}

	lister := listing.NewLister(api, ls.ids)
	if err := lister.List(ctx, writer, target, args.Bool("long")); err != nil {
		return 1, err
	}

	return 0, nil
}

// GetFlags returns the flag set for this command
func (ls *LsCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"long": {
				Name:        "long",
				Short:       "l",
				Type:        "bool",
				Default:     false,
				Description: "Use the long-format detail listing",
			},
		},
	}
}
