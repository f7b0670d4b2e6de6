package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds every style used by the view.
type Theme struct {
	TitleStyle     lipgloss.Style
	StatusBarStyle lipgloss.Style
	HelpStyle      lipgloss.Style

	PromptUserStyle lipgloss.Style
	PromptPathStyle lipgloss.Style
	OutputStyle     lipgloss.Style
	ErrorStyle      lipgloss.Style

	BorderStyle    lipgloss.Style
	DirectoryStyle lipgloss.Style
	FileStyle      lipgloss.Style
	HiddenStyle    lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C1C6B2")).
			Background(lipgloss.Color("#353533")).
			Padding(0, 1),
		HelpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),

		PromptUserStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575")),
		PromptPathStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAFFF")),
		OutputStyle: lipgloss.NewStyle(),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")),

		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		DirectoryStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5FAFFF")),
		FileStyle: lipgloss.NewStyle(),
		HiddenStyle: lipgloss.NewStyle().
			Faint(true),
	}
}
