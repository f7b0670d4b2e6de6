package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	mu       *sync.Mutex
	terminal io.Writer
	file     *lumberjack.Logger
	exit     func(code int)
	fields   []field

	Name  string
	Level LogLevel

	TimeFormat string
	File       string
	NoColor    bool
	JSON       bool
	NoTerminal bool
	Rotation   *LoggerRotation
}

type LoggerRotation struct {
	MaxSize    int  `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

type LoggerOption func(*Logger)

type field struct {
	key   string
	value any
}

type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Service   string         `json:"service,omitempty"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func NewLogger(name string, level LogLevel, opts ...LoggerOption) *Logger {
	l := &Logger{
		mu:    &sync.Mutex{},
		exit:  os.Exit,
		Name:  name,
		Level: level,

		TimeFormat: "2006-01-02 15:04:05",
		Rotation: &LoggerRotation{
			MaxSize:    128,
			MaxBackups: 5,
			MaxAge:     16,
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.terminal == nil {
		l.setupWriters()
	}

	return l
}

// Discard returns a logger that drops every message below Fatal.
func Discard() *Logger {
	return NewLogger("", Fatal, WithWriter(io.Discard))
}

func WithFile(file string) LoggerOption {
	return func(l *Logger) {
		l.File = file
	}
}

func WithRotation(rotation *LoggerRotation) LoggerOption {
	return func(l *Logger) {
		if rotation != nil {
			l.Rotation = rotation
		}
	}
}

func WithoutTerminal() LoggerOption {
	return func(l *Logger) {
		l.NoTerminal = true
	}
}

func WithoutColor() LoggerOption {
	return func(l *Logger) {
		l.NoColor = true
	}
}

func WithJSON() LoggerOption {
	return func(l *Logger) {
		l.JSON = true
	}
}

// WithWriter sends all output to w instead of the terminal and log file.
func WithWriter(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.terminal = w
		l.NoColor = true
	}
}

// WithExit replaces the function called after a fatal message.
func WithExit(exit func(code int)) LoggerOption {
	return func(l *Logger) {
		l.exit = exit
	}
}

// setupWriters opens the rotated log file and the terminal.
// The terminal is used if nothing else is configured.
func (l *Logger) setupWriters() {
	if l.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		}
	}

	if !l.NoTerminal || l.file == nil {
		l.terminal = os.Stdout
	}
}

func (l *Logger) format(level LogLevel, msg string) string {
	timestamp := time.Now().Format(l.TimeFormat)

	if l.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   l.Name,
			Message:   msg,
		}
		if len(l.fields) > 0 {
			entry.Fields = make(map[string]any, len(l.fields))
			for _, f := range l.fields {
				entry.Fields[f.key] = f.value
			}
		}

		line, _ := json.Marshal(entry)
		return string(line)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %-5s", timestamp, level)
	if l.Name != "" {
		fmt.Fprintf(&sb, " [%s]", l.Name)
	}
	sb.WriteString(" ")
	sb.WriteString(msg)
	for _, f := range l.fields {
		fmt.Fprintf(&sb, " %s=%v", f.key, f.value)
	}

	return sb.String()
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.Level {
		return
	}

	line := l.format(level, fmt.Sprintf(msg, args...))

	l.mu.Lock()
	if l.terminal != nil {
		if l.NoColor || l.JSON {
			fmt.Fprintln(l.terminal, line)
		} else {
			fmt.Fprintln(l.terminal, level.Style().Render(line))
		}
	}
	if l.file != nil {
		fmt.Fprintln(l.file, line)
	}
	l.mu.Unlock()

	if level == Fatal {
		l.exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

// Fatal logs msg and terminates the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

// Named returns a child logger writing to the same outputs as "<parent>/<name>".
func (l *Logger) Named(name string) *Logger {
	child := l.clone()
	if l.Name != "" {
		child.Name = l.Name + "/" + name
	} else {
		child.Name = name
	}

	return child
}

// With returns a child logger appending key=value to every line.
func (l *Logger) With(key string, value any) *Logger {
	child := l.clone()
	child.fields = append(child.fields, field{key: key, value: value})

	return child
}

// clone shares lock and outputs with l.
func (l *Logger) clone() *Logger {
	child := *l
	child.fields = append([]field(nil), l.fields...)

	return &child
}

// Close releases the rotated log file, if any.
// Children share the file, so only the root logger should be closed.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}
