package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
)

type MkdirCommand struct{}

func (*MkdirCommand) Name() string {
	return "mkdir"
}

func (*MkdirCommand) Description() string {
	return "Create a directory, with -p also every missing parent"
}

func (*MkdirCommand) Usage() string {
	return "mkdir [-p] <path>"
}

func (*MkdirCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, cmd.InvalidFormat()
	}

	parent, name := splitLeaf(args.Arg(0))
	if name == "" {
		return 1, cmd.InvalidFormat()
	}

	err := session.CreateDirectory(ctx, name, parent, args.Bool("parents"))
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrAlreadyExists):
			return 1, cmd.Errorf(err, "Directory '%s' already exists.", name)
		case errors.Is(err, errors.ErrPermissionDenied):
			return 1, cmd.Errorf(err, "no Permission : Can't Execute mkdir")
		case errors.Is(err, errors.ErrInvalidPath):
			return 1, cmd.Errorf(err, "Path is not correct: %v", err)
		default:
			return 1, err
		}
	}

	fmt.Fprintf(writer, "Directory '%s' created.\n", name)
	return 0, nil
}

func (*MkdirCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		cmd.BoolFlag("parents", "p", "Create missing parent directories"),
	)
}

// splitLeaf splits path at its last "/" into the parent path and the name
// of the directory to create. A path without "/" has an empty parent,
// which resolves to the current directory.
func splitLeaf(path string) (string, string) {
	path = strings.TrimRight(path, "/")

	idx := strings.LastIndex(path, "/")
	switch {
	case idx < 0:
		return "", path
	case idx == 0:
		return data.RootPath, path[1:]
	default:
		return path[:idx], path[idx+1:]
	}
}
