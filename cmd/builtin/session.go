package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsh/cmd"
)

type PwdCommand struct{}

func (*PwdCommand) Name() string {
	return "pwd"
}

func (*PwdCommand) Description() string {
	return "Print the current directory"
}

func (*PwdCommand) Usage() string {
	return "pwd"
}

func (*PwdCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	fmt.Fprintln(writer, session.CurrentPath())
	return 0, nil
}

func (*PwdCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

type WhoamiCommand struct{}

func (*WhoamiCommand) Name() string {
	return "whoami"
}

func (*WhoamiCommand) Description() string {
	return "Print the logged in user"
}

func (*WhoamiCommand) Usage() string {
	return "whoami"
}

func (*WhoamiCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	fmt.Fprintln(writer, session.User().ID)
	return 0, nil
}

func (*WhoamiCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

type ExitCommand struct{}

func (*ExitCommand) Name() string {
	return "exit"
}

func (*ExitCommand) Description() string {
	return "End the session"
}

func (*ExitCommand) Usage() string {
	return "exit"
}

func (*ExitCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	return 0, cmd.ErrExit
}

func (*ExitCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
