package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/data/errors"
)

type ChownCommand struct{}

func (*ChownCommand) Name() string {
	return "chown"
}

func (*ChownCommand) Description() string {
	return "Change the owner of an entry in the current directory"
}

func (*ChownCommand) Usage() string {
	return "chown <name> <owner>"
}

func (*ChownCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 2 {
		return 1, cmd.InvalidFormat()
	}

	filename, owner := args.Arg(0), args.Arg(1)
	if err := session.ChangeOwner(ctx, filename, owner); err != nil {
		switch {
		case errors.Is(err, errors.ErrNotFound):
			return 1, cmd.Errorf(err, "File or directory '%s' not found in the current directory.", filename)
		case errors.Is(err, errors.ErrPermissionDenied):
			return 1, cmd.Errorf(err, "no Permission")
		case errors.Is(err, errors.ErrUnknownUser):
			return 1, cmd.Errorf(err, "User '%s' does not exist. Ownership not changed.", owner)
		default:
			return 1, err
		}
	}

	fmt.Fprintf(writer, "Ownership of '%s' changed to '%s'.\n", filename, owner)
	return 0, nil
}

func (*ChownCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
