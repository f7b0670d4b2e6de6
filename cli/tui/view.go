package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTitle(),
		m.renderContent(),
		m.renderPrompt(),
		m.renderStatus(),
		m.renderHelpBar(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the title bar with current path
func (m *Model) renderTitle() string {
	if m.session == nil {
		return m.theme.TitleStyle.Render("vfsh - login")
	}

	return m.theme.TitleStyle.Render("vfsh - " + m.session.CurrentPath())
}

// renderContent renders the scrollback and, if enabled, the directory sidebar
func (m *Model) renderContent() string {
	scrollback := m.output.View()
	if !m.showSidebar || m.mode != ModeShell {
		return scrollback
	}

	sidebar := m.theme.BorderStyle.
		Width(sidebarWidth).
		Height(m.output.Height - 2).
		Render(m.renderSidebar())

	return lipgloss.JoinHorizontal(lipgloss.Top, scrollback, sidebar)
}

// renderSidebar renders the entries of the current directory
func (m *Model) renderSidebar() string {
	if len(m.entries) == 0 {
		return m.theme.HiddenStyle.Render("(empty directory)")
	}

	// every entry takes two lines
	limit := max((m.output.Height-2)/2, 1)
	nameWidth := sidebarWidth - 4

	var lines []string
	for i, entry := range m.entries {
		if i == limit-1 && len(m.entries) > limit {
			lines = append(lines, m.theme.HiddenStyle.Render(fmt.Sprintf("... %d more", len(m.entries)-i)))
			break
		}

		lines = append(lines, m.renderEntry(entry, nameWidth))
	}

	return strings.Join(lines, "\n")
}

// renderEntry renders a single sidebar entry
func (m *Model) renderEntry(entry *Entry, width int) string {
	style := m.theme.FileStyle
	if entry.IsDir() {
		style = m.theme.DirectoryStyle
	}

	name := entry.DisplayName()
	if len(name) > width {
		name = name[:width-3] + "..."
	}

	details := fmt.Sprintf("   %s %9s", entry.DisplayMode(), entry.DisplaySize())
	return entry.Icon() + " " + style.Render(name) + "\n" + m.theme.HiddenStyle.Render(details)
}

// renderPrompt renders the prompt followed by the text input
func (m *Model) renderPrompt() string {
	if m.mode == ModeLogin || m.session == nil {
		return "Enter ID: " + m.textInput.View()
	}

	prompt := m.theme.PromptUserStyle.Render(m.session.User().ID+"@vfsh") +
		" : " +
		m.theme.PromptPathStyle.Render(m.session.CurrentPath()) +
		"> "

	return prompt + m.textInput.View()
}

// renderStatus renders the status bar
func (m *Model) renderStatus() string {
	left := "not logged in"
	if m.session != nil {
		left = fmt.Sprintf("%s | %d entries", m.session.User().ID, len(m.entries))
	}

	right := m.statusMsg
	if m.errorMsg != "" {
		right = m.theme.ErrorStyle.Render(m.errorMsg)
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 0)

	statusLine := left + strings.Repeat(" ", spacing) + right
	return m.theme.StatusBarStyle.Width(m.width).Render(statusLine)
}

// renderHelpBar renders the bottom help bar
func (m *Model) renderHelpBar() string {
	if m.showFullHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}

	return m.theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
