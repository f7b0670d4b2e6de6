package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownCommand is returned for names no command is registered under.
var ErrUnknownCommand = errors.New("unknown command")

// CommandManager handles command registration, parsing, and execution
type CommandManager struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

func NewCommandManager() *CommandManager {
	return &CommandManager{
		cmds: make(map[string]Command),
	}
}

// Register registers a command under its name
func (cm *CommandManager) Register(cmds ...Command) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for _, cmd := range cmds {
		if cmd == nil {
			return fmt.Errorf("command cannot be nil")
		}

		name := cmd.Name()
		if name == "" {
			return fmt.Errorf("command name cannot be empty")
		}

		if _, exists := cm.cmds[name]; exists {
			return fmt.Errorf("command already registered: %s", name)
		}

		cm.cmds[name] = cmd
	}

	return nil
}

// Get returns a command by name
func (cm *CommandManager) Get(name string) (Command, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	cmd, exists := cm.cmds[name]
	if !exists {
		return nil, Errorf(ErrUnknownCommand, "Invalid command.")
	}

	return cmd, nil
}

// List returns all registered commands sorted by name
func (cm *CommandManager) List() []Command {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	commands := make([]Command, 0, len(cm.cmds))
	for _, cmd := range cm.cmds {
		commands = append(commands, cmd)
	}

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})

	return commands
}

// ExecuteLine splits line on whitespace and executes the result.
// An empty line is a no-op.
func (cm *CommandManager) ExecuteLine(ctx context.Context, session Session, writer io.Writer, line string) (int, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return 0, nil
	}

	return cm.Execute(ctx, session, writer, args...)
}

// Execute parses and executes a command
func (cm *CommandManager) Execute(ctx context.Context, session Session, writer io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("no command specified")
	}

	cmd, err := cm.Get(args[0])
	if err != nil {
		return 1, err
	}

	parsed, err := NewParser(cmd.GetFlags()).Parse(args[1:])
	if err != nil {
		return 1, Errorf(errors.Join(ErrInvalidFormat, err), "Invalid command format.")
	}

	return cmd.Execute(ctx, session, parsed, writer)
}
