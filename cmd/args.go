package cmd

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// Bool returns the value of a bool flag, false if it was not set.
func (ca *CommandArgs) Bool(name string) bool {
	value, ok := ca.Flags[name].(bool)
	return ok && value
}

// String returns the value of a string flag, empty if it was not set.
func (ca *CommandArgs) String(name string) string {
	value, _ := ca.Flags[name].(string)
	return value
}

// Arg returns the positional argument at index, empty if missing.
func (ca *CommandArgs) Arg(index int) string {
	if index < 0 || index >= len(ca.Args) {
		return ""
	}

	return ca.Args[index]
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// NewFlagSet builds a flag set keyed by each flag's name.
func NewFlagSet(flags ...*CommandFlag) *CommandFlagSet {
	fs := &CommandFlagSet{
		Flags: make(map[string]*CommandFlag, len(flags)),
	}
	for _, flag := range flags {
		fs.Flags[flag.Name] = flag
	}

	return fs
}

// BoolFlag is a shorthand for an optional bool flag.
func BoolFlag(name, short, description string) *CommandFlag {
	return &CommandFlag{
		Name:        name,
		Short:       short,
		Type:        FlagBool,
		Description: description,
	}
}

// FlagType selects how the value of a flag is parsed.
type FlagType int

const (
	// FlagBool flags take no value and are true when present.
	FlagBool FlagType = iota
	FlagString
	FlagInt
)

func (t FlagType) String() string {
	switch t {
	case FlagBool:
		return "bool"
	case FlagString:
		return "string"
	case FlagInt:
		return "int"
	default:
		return "unknown"
	}
}

// CommandFlag represents a single command flag
type CommandFlag struct {
	Name        string   `json:"name"`              // e.g., "parents"
	Short       string   `json:"short"`             // Single-char shorthand (e.g., "p")
	Type        FlagType `json:"type"`              // Value type
	Default     any      `json:"default,omitempty"` // Default value
	Required    bool     `json:"required"`          // Must be provided
	Description string   `json:"description"`       // Help text
}
