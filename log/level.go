package log

import (
	"fmt"
	"strings"
)

type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
	Fatal
)

var levelNames = [...]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Fatal: "FATAL",
}

func (l LogLevel) String() string {
	if l < Debug || l > Fatal {
		return "UNKNOWN"
	}

	return levelNames[l]
}

// Parse converts a level name like "info" into a LogLevel.
// An empty name selects Info, "WARNING" is accepted as an alias of Warn.
func Parse(level string) (LogLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(level))
	switch name {
	case "":
		return Info, nil
	case "WARNING":
		return Warn, nil
	}

	for l, n := range levelNames {
		if n == name {
			return LogLevel(l), nil
		}
	}

	return Info, fmt.Errorf("invalid log level '%s'", level)
}
