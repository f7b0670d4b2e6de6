package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/vfsh/cli/tui"
	"github.com/mwantia/vfsh/cmd"
)

// runShell reads commands line by line from in until exit, EOF or ctx is done.
// A nil session prompts for a user id first. A failed login ends the shell.
func runShell(ctx context.Context, manager *cmd.CommandManager, login tui.LoginFunc, session cmd.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	if session == nil {
		fmt.Fprint(out, "Enter ID: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		s, err := login(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "Invalid ID. Login failed.")
			return nil
		}

		fmt.Fprintln(out, "Login successful!")
		session = s
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(out, "%s@vfsh : %s> ", session.User().ID, session.CurrentPath())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		_, err := manager.ExecuteLine(ctx, session, out, scanner.Text())
		if errors.Is(err, cmd.ErrExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, err)
		}
	}
}
