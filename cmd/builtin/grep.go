package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/data/errors"
)

type GrepCommand struct{}

func (*GrepCommand) Name() string {
	return "grep"
}

func (*GrepCommand) Description() string {
	return "Print the lines of a file containing a pattern"
}

func (*GrepCommand) Usage() string {
	return "grep [-i] [-v] [-n] <pattern> <name>"
}

func (*GrepCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 2 {
		return 1, cmd.InvalidFormat()
	}

	pattern, filename := args.Arg(0), args.Arg(1)
	matches, err := session.Search(ctx, pattern, filename, args.Bool("ignore-case"), args.Bool("invert-match"))
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrPermissionDenied):
			return 1, cmd.Errorf(err, "no Permission : Can't Read grep %s", filename)
		case errors.Is(err, errors.ErrNotFound):
			return 1, cmd.Errorf(err, "Can't find file!")
		default:
			return 1, err
		}
	}

	numbered := args.Bool("line-number")
	for _, match := range matches {
		fmt.Fprintln(writer, match.Format(filename, numbered))
	}

	// grep reports no selected lines with exit code 1
	if len(matches) == 0 {
		return 1, nil
	}

	return 0, nil
}

func (*GrepCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		cmd.BoolFlag("ignore-case", "i", "Ignore case distinctions"),
		cmd.BoolFlag("invert-match", "v", "Select non-matching lines"),
		cmd.BoolFlag("line-number", "n", "Prefix each line with its number and the file name"),
	)
}
