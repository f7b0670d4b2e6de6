package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

func TestParser_Parse(t *testing.T) {
	flags := NewFlagSet(
		BoolFlag("ignore-case", "i", ""),
		BoolFlag("invert-match", "v", ""),
		&CommandFlag{Name: "limit", Short: "l", Type: FlagInt, Default: 10},
	)

	tests := []struct {
		name      string
		raw       []string
		args      []string
		ignore    bool
		invert    bool
		limit     int
		expectErr bool
	}{
		{"positional only", []string{"err", "app.log"}, []string{"err", "app.log"}, false, false, 10, false},
		{"combined short flags", []string{"-iv", "err", "app.log"}, []string{"err", "app.log"}, true, true, 10, false},
		{"flags after args", []string{"err", "-i", "app.log"}, []string{"err", "app.log"}, true, false, 10, false},
		{"long flag", []string{"--invert-match", "err"}, []string{"err"}, false, true, 10, false},
		{"int value", []string{"-l", "3", "err"}, []string{"err"}, false, false, 3, false},
		{"inline long value", []string{"--limit=7"}, nil, false, false, 7, false},
		{"terminator", []string{"--", "-i"}, []string{"-i"}, false, false, 10, false},
		{"unknown short", []string{"-x"}, nil, false, false, 0, true},
		{"unknown long", []string{"--color"}, nil, false, false, 0, true},
		{"attached short value", []string{"-il4", "err"}, []string{"err"}, true, false, 4, false},
		{"single dash is positional", []string{"-"}, []string{"-"}, false, false, 10, false},
		{"missing value", []string{"-l"}, nil, false, false, 0, true},
		{"missing long value", []string{"--limit", "-i"}, nil, false, false, 0, true},
		{"invalid int", []string{"--limit=many"}, nil, false, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := NewParser(flags).Parse(tt.raw)
			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected parse error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if len(args.Args) != len(tt.args) {
				t.Fatalf("Expected args %v, got %v", tt.args, args.Args)
			}
			for i := range tt.args {
				if args.Args[i] != tt.args[i] {
					t.Errorf("Arg %d: expected %q, got %q", i, tt.args[i], args.Args[i])
				}
			}

			if args.Bool("ignore-case") != tt.ignore || args.Bool("invert-match") != tt.invert {
				t.Errorf("Unexpected bool flags: %v", args.Flags)
			}
			if args.Flags["limit"] != tt.limit {
				t.Errorf("Expected limit %d, got %v", tt.limit, args.Flags["limit"])
			}
		})
	}
}

func TestParser_Required(t *testing.T) {
	flags := NewFlagSet(&CommandFlag{Name: "owner", Short: "o", Type: FlagString, Required: true})

	if _, err := NewParser(flags).Parse([]string{"file"}); err == nil {
		t.Error("Expected error for missing required flag")
	}

	args, err := NewParser(flags).Parse([]string{"-o", "alice", "file"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if args.String("owner") != "alice" || args.Arg(0) != "file" || args.Arg(1) != "" {
		t.Errorf("Unexpected parse result: %+v", args)
	}
}

type echoCommand struct{}

func (*echoCommand) Name() string        { return "echo" }
func (*echoCommand) Description() string { return "" }
func (*echoCommand) Usage() string       { return "echo [-u] <text>..." }

func (*echoCommand) Execute(ctx context.Context, session Session, args *CommandArgs, writer io.Writer) (int, error) {
	for _, arg := range args.Args {
		io.WriteString(writer, arg)
	}
	if args.Bool("upper") {
		io.WriteString(writer, "!")
	}
	return 0, nil
}

func (*echoCommand) GetFlags() *CommandFlagSet {
	return NewFlagSet(BoolFlag("upper", "u", ""))
}

func TestCommandManager(t *testing.T) {
	cm := NewCommandManager()
	if err := cm.Register(&echoCommand{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := cm.Register(&echoCommand{}); err == nil {
		t.Error("Expected error for duplicate registration")
	}

	ctx := t.Context()
	var buf bytes.Buffer

	code, err := cm.ExecuteLine(ctx, nil, &buf, "  echo  a -u b ")
	if err != nil || code != 0 {
		t.Fatalf("ExecuteLine failed: %d %v", code, err)
	}
	if buf.String() != "ab!" {
		t.Errorf("Expected 'ab!', got %q", buf.String())
	}

	if code, err := cm.ExecuteLine(ctx, nil, &buf, "   "); code != 0 || err != nil {
		t.Errorf("Expected empty line to be a no-op, got %d %v", code, err)
	}

	_, err = cm.ExecuteLine(ctx, nil, &buf, "rm -rf /")
	if !errors.Is(err, ErrUnknownCommand) || err.Error() != "Invalid command." {
		t.Errorf("Expected unknown command error, got %v", err)
	}

	_, err = cm.ExecuteLine(ctx, nil, &buf, "echo -x")
	if !errors.Is(err, ErrInvalidFormat) || err.Error() != "Invalid command format." {
		t.Errorf("Expected invalid format error, got %v", err)
	}
}
