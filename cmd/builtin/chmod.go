package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
)

type ChmodCommand struct{}

func (*ChmodCommand) Name() string {
	return "chmod"
}

func (*ChmodCommand) Description() string {
	return "Change the permission bits of an entry in the current directory"
}

func (*ChmodCommand) Usage() string {
	return "chmod <octal> <name>"
}

func (*ChmodCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 2 {
		return 1, cmd.InvalidFormat()
	}

	filename := args.Arg(1)
	mode, err := data.ParseOctalMode(args.Arg(0))
	if err != nil {
		return 1, cmd.Errorf(err, "Invalid permission '%s'.", args.Arg(0))
	}

	if err := session.ChangeMode(ctx, filename, mode); err != nil {
		switch {
		case errors.Is(err, errors.ErrNotFound):
			return 1, cmd.Errorf(err, "File '%s' not found in the current directory.", filename)
		case errors.Is(err, errors.ErrPermissionDenied):
			return 1, cmd.Errorf(err, "Permission denied. You do not have sufficient privileges to modify the file '%s'.", filename)
		default:
			return 1, err
		}
	}

	fmt.Fprintf(writer, "Permission of '%s' changed to %s.\n", filename, mode.Octal())
	return 0, nil
}

func (*ChmodCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
