package builtin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwantia/vfsh/cmd"
)

// HelpCommand prints the usage of every registered command.
type HelpCommand struct {
	manager *cmd.CommandManager
}

func NewHelpCommand(manager *cmd.CommandManager) *HelpCommand {
	return &HelpCommand{manager: manager}
}

func (*HelpCommand) Name() string {
	return "help"
}

func (*HelpCommand) Description() string {
	return "Show available commands"
}

func (*HelpCommand) Usage() string {
	return "help"
}

func (h *HelpCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	for _, command := range h.manager.List() {
		fmt.Fprintf(tw, "%s\t%s\n", command.Usage(), command.Description())
	}

	return 0, tw.Flush()
}

func (*HelpCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
