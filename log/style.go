package log

import "github.com/charmbracelet/lipgloss"

var levelStyles = map[LogLevel]lipgloss.Style{
	Debug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Error: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Fatal: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
}

// Style returns the terminal style used for lines of this level.
func (l LogLevel) Style() lipgloss.Style {
	if style, ok := levelStyles[l]; ok {
		return style
	}

	return lipgloss.NewStyle()
}
