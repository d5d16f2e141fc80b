package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vls/cmd"
)

// MountsCommand prints the current mount table.
type MountsCommand struct {
}

// Name returns the command identifier
func (mc *MountsCommand) Name() string {
	return "mounts"
}

// Description returns human-readable help text
func (mc *MountsCommand) Description() string {
	return "Show all mounted sources"
}

// Usage returns a usage string for help
func (mc *MountsCommand) Usage() string {
	return "mounts"
}

// Execute runs the command with parsed arguments
func (mc *MountsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	for _, info := range api.Mounts() {
		address := info.Address
		if address == "" {
			address = "-"
		}
		fmt.Fprintf(writer, "%s %s %s\n", info.Path, address, info.MountedAt.Format("2006-01-02 15:04:05"))
	}

	return 0, nil
}

// GetFlags returns the flag set for this command
func (mc *MountsCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
