package builtin

import (
	"context"
	"io"

	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
)

type CdCommand struct{}

func (*CdCommand) Name() string {
	return "cd"
}

func (*CdCommand) Description() string {
	return "Change the current directory"
}

func (*CdCommand) Usage() string {
	return "cd <path>"
}

func (*CdCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, cmd.InvalidFormat()
	}

	token := args.Arg(0)
	if err := session.Navigate(ctx, token); err != nil {
		switch {
		case errors.Is(err, errors.ErrPermissionDenied):
			return 1, cmd.Errorf(err, "no Permission")
		case errors.Is(err, errors.ErrInvalidPath):
			return 1, cmd.Errorf(err, "Invalid directory path: %s", data.Resolve(token, session.CurrentPath()))
		default:
			return 1, err
		}
	}

	return 0, nil
}

func (*CdCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
