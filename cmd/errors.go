package cmd

import (
	"errors"
	"fmt"
)

// ErrExit is returned by a command that ends the session.
var ErrExit = errors.New("exit")

// CommandError carries the message shown to the user next to the
// underlying error, which stays reachable through errors.Is.
type CommandError struct {
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Errorf wraps err with a formatted user message.
func Errorf(err error, format string, args ...any) error {
	return &CommandError{
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrInvalidFormat reports a command line that does not fit the usage.
var ErrInvalidFormat = errors.New("invalid command format")

// InvalidFormat returns the error for malformed arguments.
func InvalidFormat() error {
	return Errorf(ErrInvalidFormat, "Invalid command format.")
}
