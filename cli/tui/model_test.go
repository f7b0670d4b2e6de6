package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/vfsh"
	"github.com/mwantia/vfsh/backend/memory"
	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/cmd/builtin"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *vfs.VirtualFileSystem {
	t.Helper()

	ctx := t.Context()
	mb := memory.NewMemoryBackend()
	for _, id := range []string{"root", "alice"} {
		mb.AddUser(&data.User{ID: id})
	}

	now := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	home := data.NewDirectory("/", "home", "alice", now)
	notes := &data.Entry{
		ParentPath: "/home", Kind: data.KindFile, Name: "notes.txt", Size: 12,
		Mode: 0644, Owner: "alice", CreatedAt: "2024-06-02", SelfPath: "/home/notes.txt",
	}
	hidden := &data.Entry{
		ParentPath: "/home", Kind: data.KindFile, Name: ".profile", Size: 3,
		Mode: 0600, Owner: "alice", CreatedAt: "2024-06-02", SelfPath: "/home/.profile", Hidden: true,
	}
	require.NoError(t, mb.SaveEntries(ctx, []*data.Entry{home, notes, hidden}))
	mb.SetContent("notes.txt", []byte("hello\n\nERROR again\n"))

	fs, err := vfs.NewVirtualFileSystem(ctx,
		vfs.WithLogger(log.Discard()),
		vfs.WithEntryBackend(mb),
		vfs.WithUserBackend(mb),
		vfs.WithContentBackend(mb),
		vfs.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	t.Cleanup(func() { fs.Close(context.Background()) })

	return fs
}

func loginFunc(fs *vfs.VirtualFileSystem) LoginFunc {
	return func(ctx context.Context, id string) (cmd.Session, error) {
		session, err := fs.Login(ctx, id)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}

func newTestModel(t *testing.T, user string) *Model {
	t.Helper()

	fs := newTestFS(t)
	manager, err := builtin.NewManager()
	require.NoError(t, err)

	var session cmd.Session
	if user != "" {
		s, err := fs.Login(t.Context(), user)
		require.NoError(t, err)
		session = s
	}

	m := NewModel(t.Context(), manager, loginFunc(fs), session)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if session != nil {
		run(m, m.loadDirectory())
	}

	return m
}

// run executes c and feeds every resulting message back into the model.
// Returns true if the model asked to quit.
func run(m *Model, c tea.Cmd) bool {
	for c != nil {
		msg := c()
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
		if msg == nil {
			return false
		}

		_, c = m.Update(msg)
	}

	return false
}

// submit types line into the input and presses enter.
func submit(m *Model, line string) bool {
	if line != "" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	}

	_, c := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return run(m, c)
}

func scrollback(m *Model) string {
	return strings.Join(m.lines, "\n")
}

func TestModel_Login(t *testing.T) {
	m := newTestModel(t, "")
	assert.Equal(t, ModeLogin, m.mode)
	assert.Contains(t, m.View(), "Enter ID:")

	submit(m, "mallory")
	assert.Equal(t, ModeLogin, m.mode)
	assert.Contains(t, scrollback(m), "Invalid ID. Login failed.")
	assert.Nil(t, m.session)

	submit(m, "alice")
	require.Equal(t, ModeShell, m.mode)
	assert.Contains(t, scrollback(m), "Login successful!")
	assert.Equal(t, "alice", m.session.User().ID)

	require.Len(t, m.entries, 1)
	assert.Equal(t, "home/", m.entries[0].DisplayName())
}

func TestModel_Commands(t *testing.T) {
	m := newTestModel(t, "alice")

	submit(m, "cd home")
	assert.Equal(t, "/home", m.session.CurrentPath())
	assert.Contains(t, scrollback(m), "alice@vfsh : /> cd home")
	assert.Empty(t, m.errorMsg)

	// Hidden entries are not shown in the sidebar
	require.Len(t, m.entries, 1)
	assert.Equal(t, "notes.txt", m.entries[0].Name)

	submit(m, "cat notes.txt")
	assert.Contains(t, scrollback(m), "hello\nERROR again")
	assert.Equal(t, "exit 0", m.statusMsg)

	submit(m, "cd nowhere")
	assert.Contains(t, m.errorMsg, "nowhere")
	assert.Equal(t, "/home", m.session.CurrentPath())

	submit(m, "frobnicate")
	assert.Equal(t, "Invalid command.", m.errorMsg)

	assert.True(t, submit(m, "exit"))
}

func TestModel_EmptyLine(t *testing.T) {
	m := newTestModel(t, "alice")

	assert.False(t, submit(m, ""))
	assert.Empty(t, m.history)
	assert.Equal(t, "alice@vfsh : /> ", m.lines[len(m.lines)-1])
}

func TestModel_History(t *testing.T) {
	m := newTestModel(t, "alice")

	submit(m, "pwd")
	submit(m, "whoami")
	submit(m, "whoami")
	assert.Equal(t, []string{"pwd", "whoami"}, m.history)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "whoami", m.textInput.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "pwd", m.textInput.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.textInput.Value())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, "alice")
	submit(m, "cd home")

	view := m.View()
	assert.Contains(t, view, "vfsh - /home")
	assert.Contains(t, view, "alice@vfsh")
	assert.Contains(t, view, "notes.txt")
	assert.Contains(t, view, "-rw-r--r--")
	assert.Contains(t, view, "12 B")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.False(t, m.showSidebar)
	assert.NotContains(t, m.View(), "📄 notes.txt")
	assert.NotContains(t, m.View(), "12 B")

	_, c := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, c)
	_, ok := c().(tea.QuitMsg)
	assert.True(t, ok)
}
