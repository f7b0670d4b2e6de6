package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/data/errors"
)

// LsCommand lists the working directory. The ll and la variants are the
// same command with the detailed or hidden flag preset.
type LsCommand struct {
	name     string
	hidden   bool
	detailed bool
}

func NewLsCommand() *LsCommand {
	return &LsCommand{name: "ls"}
}

func NewLlCommand() *LsCommand {
	return &LsCommand{name: "ll", detailed: true}
}

func NewLaCommand() *LsCommand {
	return &LsCommand{name: "la", hidden: true}
}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return ls.name
}

// Description returns human-readable help text
func (ls *LsCommand) Description() string {
	switch {
	case ls.detailed:
		return "List the current directory with permissions, owner, size and date"
	case ls.hidden:
		return "List the current directory including hidden entries"
	default:
		return "List the current directory"
	}
}

// Usage returns a usage string for help
func (ls *LsCommand) Usage() string {
	if ls.name == "ls" {
		return "ls [-a] [-l]"
	}

	return ls.name
}

// Execute runs the command with parsed arguments
// Returns exit code (0 = success) and error message
func (ls *LsCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) > 0 {
		return 1, cmd.InvalidFormat()
	}

	hidden := ls.hidden || args.Bool("all")
	detailed := ls.detailed || args.Bool("long")

	entries, err := session.List(ctx, hidden)
	if err != nil {
		if errors.Is(err, errors.ErrPermissionDenied) {
			return 1, cmd.Errorf(err, "no Permission")
		}
		return 1, err
	}

	fmt.Fprintf(writer, "Directory listing for %s:\n", session.CurrentPath())
	for _, entry := range entries {
		if detailed {
			fmt.Fprintln(writer, entry.Details())
		} else {
			fmt.Fprintln(writer, entry.Name)
		}
	}

	return 0, nil
}

// GetFlags returns the flag set for this command
func (ls *LsCommand) GetFlags() *cmd.CommandFlagSet {
	if ls.name != "ls" {
		return nil
	}

	return cmd.NewFlagSet(
		cmd.BoolFlag("all", "a", "Include hidden entries"),
		cmd.BoolFlag("long", "l", "Use the detailed listing format"),
	)
}
