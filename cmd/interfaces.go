package cmd

import (
	"context"
	"io"

	"github.com/mwantia/vfsh/data"
)

// Session is the namespace surface commands operate on.
// It is satisfied by a logged in vfs session.
type Session interface {
	// User returns the logged in user.
	User() *data.User

	// CurrentPath returns the working directory of the session.
	CurrentPath() string

	// Navigate changes the working directory.
	Navigate(ctx context.Context, token string) error

	// List returns the entries below the working directory.
	List(ctx context.Context, showHidden bool) ([]*data.Entry, error)

	// CreateDirectory creates name below path, optionally creating missing ancestors.
	CreateDirectory(ctx context.Context, name, path string, recursive bool) error

	// ChangeOwner hands an entry of the working directory over to owner.
	ChangeOwner(ctx context.Context, filename, owner string) error

	// ChangeMode replaces the permission bits of an entry of the working directory.
	ChangeMode(ctx context.Context, filename string, mode data.FileMode) error

	// ReadFile writes the content of a file of the working directory to w.
	ReadFile(ctx context.Context, filename string, numbered bool, w io.Writer) error

	// Search returns the lines of a file of the working directory containing pattern.
	Search(ctx context.Context, pattern, filename string, ignoreCase, invert bool) ([]*data.Match, error)
}

// Command represents an executable shell command.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "mkdir [-p] <path>")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, session Session, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
