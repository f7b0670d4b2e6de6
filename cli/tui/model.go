package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/vfsh/cmd"
)

// Mode represents the current interaction mode
type Mode int

const (
	ModeLogin Mode = iota
	ModeShell
)

const (
	sidebarWidth = 32
	maxHistory   = 256
)

// LoginFunc starts a session for the user with the given id.
type LoginFunc func(ctx context.Context, id string) (cmd.Session, error)

// Model represents the state of the TUI application
type Model struct {
	ctx     context.Context
	login   LoginFunc
	manager *cmd.CommandManager
	session cmd.Session

	theme *Theme
	keys  KeyMap
	help  help.Model

	mode      Mode
	textInput textinput.Model
	output    viewport.Model
	lines     []string

	history      []string
	historyIndex int

	entries     []*Entry
	showSidebar bool

	width        int
	height       int
	statusMsg    string
	errorMsg     string
	showFullHelp bool
}

// NewModel creates a new TUI model. A nil session starts at the login prompt.
func NewModel(ctx context.Context, manager *cmd.CommandManager, login LoginFunc, session cmd.Session) *Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Focus()

	m := &Model{
		ctx:         ctx,
		login:       login,
		manager:     manager,
		theme:       DefaultTheme(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		textInput:   ti,
		output:      viewport.New(80, 20),
		showSidebar: true,
	}

	if session != nil {
		m.startSession(session)
	} else {
		m.mode = ModeLogin
		m.textInput.Placeholder = "user id"
	}

	return m
}

type loginMsg struct {
	id      string
	session cmd.Session
	err     error
}

type commandExecutedMsg struct {
	line   string
	output string
	code   int
	err    error
}

type directoryLoadedMsg struct {
	path    string
	entries []*Entry
	err     error
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	if m.mode == ModeShell {
		return tea.Batch(m.loadDirectory(), textinput.Blink)
	}

	return textinput.Blink
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case loginMsg:
		if msg.err != nil {
			m.appendOutput(m.theme.ErrorStyle.Render("Invalid ID. Login failed."))
			m.errorMsg = msg.err.Error()
			return m, nil
		}

		m.appendOutput("Login successful!")
		m.startSession(msg.session)
		return m, m.loadDirectory()

	case commandExecutedMsg:
		if msg.output != "" {
			m.appendOutput(strings.TrimRight(msg.output, "\n"))
		}

		m.errorMsg = ""
		m.statusMsg = fmt.Sprintf("exit %d", msg.code)
		if msg.err != nil {
			if errors.Is(msg.err, cmd.ErrExit) {
				return m, tea.Quit
			}

			m.errorMsg = msg.err.Error()
			m.appendOutput(m.theme.ErrorStyle.Render(msg.err.Error()))
		}

		return m, m.loadDirectory()

	case directoryLoadedMsg:
		if msg.err != nil {
			m.entries = nil
			return m, nil
		}

		m.entries = msg.entries
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var inputCmd tea.Cmd
	m.textInput, inputCmd = m.textInput.Update(msg)
	return m, inputCmd
}

// handleKeyPress processes keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showFullHelp = !m.showFullHelp
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.output.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.output.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		m.recall(-1)
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		m.recall(1)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitInput()
	}

	var inputCmd tea.Cmd
	m.textInput, inputCmd = m.textInput.Update(msg)
	return m, inputCmd
}

// submitInput processes the collected input depending on the mode
func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.textInput.Value())
	m.textInput.SetValue("")

	if m.mode == ModeLogin {
		m.appendOutput("Enter ID: " + value)
		return m.performLogin(value)
	}

	m.appendOutput(m.rawPrompt() + value)
	if value == "" {
		return nil
	}

	m.pushHistory(value)
	return m.executeCommand(value)
}

func (m *Model) performLogin(id string) tea.Cmd {
	ctx, login := m.ctx, m.login
	return func() tea.Msg {
		session, err := login(ctx, id)
		return loginMsg{id: id, session: session, err: err}
	}
}

func (m *Model) executeCommand(line string) tea.Cmd {
	ctx, manager, session := m.ctx, m.manager, m.session
	return func() tea.Msg {
		var buf bytes.Buffer
		code, err := manager.ExecuteLine(ctx, session, &buf, line)

		return commandExecutedMsg{
			line:   line,
			output: buf.String(),
			code:   code,
			err:    err,
		}
	}
}

// loadDirectory refreshes the sidebar with the visible entries of the current directory
func (m *Model) loadDirectory() tea.Cmd {
	if m.session == nil {
		return nil
	}

	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		path := session.CurrentPath()
		entries, err := session.List(ctx, false)

		return directoryLoadedMsg{
			path:    path,
			entries: newEntries(entries),
			err:     err,
		}
	}
}

func (m *Model) startSession(session cmd.Session) {
	m.session = session
	m.mode = ModeShell
	m.textInput.Placeholder = ""
	m.history = nil
	m.historyIndex = 0
	m.errorMsg = ""
	m.statusMsg = ""
	m.resize()
}

func (m *Model) pushHistory(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}

	m.historyIndex = len(m.history)
}

// recall moves through the command history by delta
func (m *Model) recall(delta int) {
	if m.mode != ModeShell || len(m.history) == 0 {
		return
	}

	m.historyIndex = min(max(m.historyIndex+delta, 0), len(m.history))
	if m.historyIndex == len(m.history) {
		m.textInput.SetValue("")
		return
	}

	m.textInput.SetValue(m.history[m.historyIndex])
	m.textInput.CursorEnd()
}

func (m *Model) appendOutput(text string) {
	m.lines = append(m.lines, text)
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

// resize recalculates the viewport dimensions after a layout change
func (m *Model) resize() {
	if m.width == 0 {
		return
	}

	width := m.width
	if m.showSidebar && m.mode == ModeShell {
		width -= sidebarWidth + 2
	}

	// title, prompt, status and help bar
	reserved := 4
	if m.showFullHelp {
		reserved += 3
	}

	m.output.Width = max(width, 10)
	m.output.Height = max(m.height-reserved, 3)
	m.textInput.Width = max(m.width-len(m.rawPrompt())-2, 10)
}

// rawPrompt returns the unstyled prompt
func (m *Model) rawPrompt() string {
	if m.mode == ModeLogin || m.session == nil {
		return "Enter ID: "
	}

	return fmt.Sprintf("%s@vfsh : %s> ", m.session.User().ID, m.session.CurrentPath())
}
