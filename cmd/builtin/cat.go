package builtin

import (
	"context"
	"io"

	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/data/errors"
)

type CatCommand struct{}

func (*CatCommand) Name() string {
	return "cat"
}

func (*CatCommand) Description() string {
	return "Print a file of the current directory"
}

func (*CatCommand) Usage() string {
	return "cat [-n] <name>"
}

func (*CatCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, cmd.InvalidFormat()
	}

	filename := args.Arg(0)
	if err := session.ReadFile(ctx, filename, args.Bool("number"), writer); err != nil {
		switch {
		case errors.Is(err, errors.ErrPermissionDenied):
			return 1, cmd.Errorf(err, "no Permission : Can't Execute cat %s", filename)
		case errors.Is(err, errors.ErrNotFound):
			return 1, cmd.Errorf(err, "Can not find File.")
		default:
			return 1, err
		}
	}

	return 0, nil
}

func (*CatCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		cmd.BoolFlag("number", "n", "Number all output lines"),
	)
}
