package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser splits raw command arguments into flags and positional arguments.
//
// Long flags are written as "--name" or "--name=value", short flags as "-n"
// and may be combined ("-inv"). A value flag takes the rest of a combined
// short group or the next argument. Everything after "--" is positional.
type Parser struct {
	flagSet *CommandFlagSet
	long    map[string]*CommandFlag
	short   map[rune]*CommandFlag
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	if flagSet == nil {
		flagSet = NewFlagSet()
	}

	cp := &Parser{
		flagSet: flagSet,
		long:    make(map[string]*CommandFlag, len(flagSet.Flags)),
		short:   make(map[rune]*CommandFlag, len(flagSet.Flags)),
	}
	for _, flag := range flagSet.Flags {
		cp.long[flag.Name] = flag
		if r := []rune(flag.Short); len(r) == 1 {
			cp.short[r[0]] = flag
		}
	}

	return cp
}

func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for name, flag := range cp.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[name] = flag.Default
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		var consumed int
		var err error

		switch {
		case arg == "--":
			args.Args = append(args.Args, raw[i+1:]...)
			return args, cp.checkRequired(args)
		case strings.HasPrefix(arg, "--"):
			consumed, err = cp.parseLong(args, arg[2:], raw[i+1:])
		case len(arg) > 1 && arg[0] == '-':
			consumed, err = cp.parseShort(args, arg[1:], raw[i+1:])
		default:
			args.Args = append(args.Args, arg)
		}

		if err != nil {
			return nil, err
		}
		i += consumed
	}

	return args, cp.checkRequired(args)
}

// parseLong handles one "--name[=value]" argument and returns how many of
// the following arguments it consumed.
func (cp *Parser) parseLong(args *CommandArgs, arg string, rest []string) (int, error) {
	name, value, hasValue := strings.Cut(arg, "=")

	flag, ok := cp.long[name]
	if !ok {
		return 0, fmt.Errorf("unknown flag: --%s", name)
	}

	if flag.Type == FlagBool {
		args.Flags[flag.Name] = true
		return 0, nil
	}

	consumed := 0
	if !hasValue {
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			return 0, fmt.Errorf("flag --%s requires a value", name)
		}
		value, consumed = rest[0], 1
	}

	v, err := flag.parseValue(value)
	if err != nil {
		return 0, err
	}
	args.Flags[flag.Name] = v

	return consumed, nil
}

// parseShort handles a group of short flags such as "-inv" or "-l3".
func (cp *Parser) parseShort(args *CommandArgs, group string, rest []string) (int, error) {
	runes := []rune(group)
	for j, r := range runes {
		flag, ok := cp.short[r]
		if !ok {
			return 0, fmt.Errorf("unknown flag: -%c", r)
		}

		if flag.Type == FlagBool {
			args.Flags[flag.Name] = true
			continue
		}

		value, consumed := string(runes[j+1:]), 0
		if value == "" {
			if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
				return 0, fmt.Errorf("flag -%c requires a value", r)
			}
			value, consumed = rest[0], 1
		}

		v, err := flag.parseValue(value)
		if err != nil {
			return 0, err
		}
		args.Flags[flag.Name] = v

		return consumed, nil
	}

	return 0, nil
}

func (cp *Parser) checkRequired(args *CommandArgs) error {
	for name, flag := range cp.flagSet.Flags {
		if !flag.Required {
			continue
		}
		if _, ok := args.Flags[name]; ok {
			continue
		}

		if flag.Short != "" {
			return fmt.Errorf("required flag: -%s / --%s", flag.Short, flag.Name)
		}
		return fmt.Errorf("required flag: --%s", flag.Name)
	}

	return nil
}

func (f *CommandFlag) parseValue(value string) (any, error) {
	switch f.Type {
	case FlagInt:
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s' for flag --%s: %w", value, f.Name, err)
		}
		return v, nil
	case FlagBool:
		return strconv.ParseBool(value)
	default:
		return value, nil
	}
}
