package builtin_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mwantia/vfsh"
	"github.com/mwantia/vfsh/backend/memory"
	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/cmd/builtin"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ cmd.Session = (*vfs.Session)(nil)

type shell struct {
	manager  *cmd.CommandManager
	sessions map[string]*vfs.Session
}

func newShell(t *testing.T) *shell {
	t.Helper()

	ctx := t.Context()
	mb := memory.NewMemoryBackend()
	for _, id := range []string{"root", "alice", "bob"} {
		mb.AddUser(&data.User{ID: id})
	}

	now := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	home := data.NewDirectory("/", "home", "alice", now)
	home.Mode = 0750
	notes := &data.Entry{
		ParentPath: "/home", Kind: data.KindFile, Name: "notes.txt", Size: 24,
		Mode: 0644, Owner: "alice", CreatedAt: "2024-06-02", SelfPath: "/home/notes.txt",
	}
	hidden := &data.Entry{
		ParentPath: "/home", Kind: data.KindFile, Name: ".profile", Size: 3,
		Mode: 0600, Owner: "alice", CreatedAt: "2024-06-02", SelfPath: "/home/.profile", Hidden: true,
	}
	require.NoError(t, mb.SaveEntries(ctx, []*data.Entry{home, notes, hidden}))
	mb.SetContent("notes.txt", []byte("Error: disk\nok\n\nERROR again\n"))

	fs, err := vfs.NewVirtualFileSystem(ctx,
		vfs.WithLogger(log.Discard()),
		vfs.WithEntryBackend(mb),
		vfs.WithUserBackend(mb),
		vfs.WithContentBackend(mb),
		vfs.WithClock(func() time.Time { return now }),
		vfs.WithFatalHandler(func(err error) { t.Errorf("Unexpected persistence failure: %v", err) }))
	require.NoError(t, err)
	t.Cleanup(func() { fs.Close(context.Background()) })

	manager, err := builtin.NewManager()
	require.NoError(t, err)

	sh := &shell{manager: manager, sessions: make(map[string]*vfs.Session)}
	for _, id := range []string{"root", "alice", "bob"} {
		session, err := fs.Login(ctx, id)
		require.NoError(t, err)
		sh.sessions[id] = session
	}

	return sh
}

// run executes line as user and returns the output and the error message.
func (sh *shell) run(t *testing.T, user, line string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	_, err := sh.manager.ExecuteLine(t.Context(), sh.sessions[user], &buf, line)

	return buf.String(), err
}

func TestListing(t *testing.T) {
	sh := newShell(t)

	_, err := sh.run(t, "alice", "cd home")
	require.NoError(t, err)

	out, err := sh.run(t, "alice", "ls")
	require.NoError(t, err)
	assert.Equal(t, "Directory listing for /home:\nnotes.txt\n", out)

	out, err = sh.run(t, "alice", "la")
	require.NoError(t, err)
	assert.Equal(t, "Directory listing for /home:\nnotes.txt\n.profile\n", out)

	out, err = sh.run(t, "alice", "ll")
	require.NoError(t, err)
	assert.Equal(t, "Directory listing for /home:\n-rw-r--r-- 1 alice 24 2024-06-02 notes.txt\n", out)

	out, err = sh.run(t, "alice", "ls -al")
	require.NoError(t, err)
	assert.Contains(t, out, "-rw------- 1 alice 3 2024-06-02 .profile\n")

	out, err = sh.run(t, "root", "ll")
	require.NoError(t, err)
	assert.Equal(t, "Directory listing for /:\ndrwxr-x--- 1 alice 4096 2024-06-02 home\n", out)

	_, err = sh.run(t, "alice", "ls extra")
	assert.ErrorIs(t, err, cmd.ErrInvalidFormat)
}

func TestNavigation(t *testing.T) {
	sh := newShell(t)

	_, err := sh.run(t, "bob", "cd /home")
	require.Error(t, err)
	assert.Equal(t, "no Permission", err.Error())
	assert.ErrorIs(t, err, vfs.ErrPermissionDenied)

	_, err = sh.run(t, "bob", "cd /nowhere")
	require.Error(t, err)
	assert.Equal(t, "Invalid directory path: /nowhere", err.Error())

	out, _ := sh.run(t, "bob", "pwd")
	assert.Equal(t, "/\n", out)

	_, err = sh.run(t, "root", "cd home")
	require.NoError(t, err)
	out, _ = sh.run(t, "root", "pwd")
	assert.Equal(t, "/home\n", out)

	out, _ = sh.run(t, "bob", "whoami")
	assert.Equal(t, "bob\n", out)
}

func TestMkdir(t *testing.T) {
	sh := newShell(t)

	out, err := sh.run(t, "bob", "mkdir -p /var/log/app")
	require.NoError(t, err)
	assert.Equal(t, "Directory 'app' created.\n", out)

	_, err = sh.run(t, "bob", "mkdir /var/log/app")
	require.Error(t, err)
	assert.Equal(t, "Directory 'app' already exists.", err.Error())

	_, err = sh.run(t, "bob", "mkdir /home/bob")
	require.Error(t, err)
	assert.Equal(t, "no Permission : Can't Execute mkdir", err.Error())

	_, err = sh.run(t, "bob", "mkdir /missing/dir")
	assert.ErrorIs(t, err, vfs.ErrInvalidPath)
	assert.True(t, strings.HasPrefix(err.Error(), "Path is not correct: "))

	_, err = sh.run(t, "bob", "cd /var")
	require.NoError(t, err)
	out, err = sh.run(t, "bob", "mkdir tmp")
	require.NoError(t, err)
	assert.Equal(t, "Directory 'tmp' created.\n", out)

	out, _ = sh.run(t, "bob", "ll")
	assert.Equal(t, "Directory listing for /var:\ndrwxr-xr-x 1 bob 4096 2024-06-02 log\ndrwxr-xr-x 1 bob 4096 2024-06-02 tmp\n", out)

	_, err = sh.run(t, "bob", "mkdir")
	assert.ErrorIs(t, err, cmd.ErrInvalidFormat)
}

func TestChownChmod(t *testing.T) {
	sh := newShell(t)

	_, err := sh.run(t, "root", "cd /home")
	require.NoError(t, err)

	_, err = sh.run(t, "root", "chown notes.txt mallory")
	require.Error(t, err)
	assert.Equal(t, "User 'mallory' does not exist. Ownership not changed.", err.Error())

	_, err = sh.run(t, "root", "chown missing.txt bob")
	require.Error(t, err)
	assert.Equal(t, "File or directory 'missing.txt' not found in the current directory.", err.Error())

	out, err := sh.run(t, "root", "chown notes.txt bob")
	require.NoError(t, err)
	assert.Equal(t, "Ownership of 'notes.txt' changed to 'bob'.\n", out)

	_, err = sh.run(t, "alice", "cd /home")
	require.NoError(t, err)

	_, err = sh.run(t, "alice", "chmod 777 notes.txt")
	require.Error(t, err)
	assert.Equal(t, "Permission denied. You do not have sufficient privileges to modify the file 'notes.txt'.", err.Error())

	_, err = sh.run(t, "alice", "chmod 999 .profile")
	require.Error(t, err)
	assert.Equal(t, "Invalid permission '999'.", err.Error())

	_, err = sh.run(t, "alice", "chmod 644 gone.txt")
	require.Error(t, err)
	assert.Equal(t, "File 'gone.txt' not found in the current directory.", err.Error())

	out, err = sh.run(t, "alice", "chmod 640 .profile")
	require.NoError(t, err)
	assert.Equal(t, "Permission of '.profile' changed to 640.\n", out)
}

func TestCat(t *testing.T) {
	sh := newShell(t)

	_, err := sh.run(t, "alice", "cd /home")
	require.NoError(t, err)

	out, err := sh.run(t, "alice", "cat notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "Error: disk\nok\nERROR again\n", out)

	out, err = sh.run(t, "alice", "cat -n notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "1\t Error: disk\n2\t ok\n3\n4\t ERROR again\n", out)

	_, err = sh.run(t, "alice", "cat missing.txt")
	require.Error(t, err)
	assert.Equal(t, "Can not find File.", err.Error())

	_, err = sh.run(t, "alice", "chmod 000 notes.txt")
	require.NoError(t, err)
	_, err = sh.run(t, "alice", "cat notes.txt")
	require.Error(t, err)
	assert.Equal(t, "no Permission : Can't Execute cat notes.txt", err.Error())
}

func TestGrep(t *testing.T) {
	sh := newShell(t)

	_, err := sh.run(t, "alice", "cd /home")
	require.NoError(t, err)

	tests := []struct {
		line     string
		expected string
		code     int
	}{
		{"grep Error notes.txt", "Error: disk\n", 0},
		{"grep -i error notes.txt", "Error: disk\nERROR again\n", 0},
		{"grep -in error notes.txt", "1:notes.txt: Error: disk\n4:notes.txt: ERROR again\n", 0},
		{"grep -v -n o notes.txt", "3:notes.txt: \n4:notes.txt: ERROR again\n", 0},
		{"grep missing notes.txt", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			var buf bytes.Buffer
			code, err := sh.manager.ExecuteLine(t.Context(), sh.sessions["alice"], &buf, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.expected, buf.String())
		})
	}

	_, err = sh.run(t, "alice", "grep x nothing.txt")
	require.Error(t, err)
	assert.Equal(t, "Can't find file!", err.Error())

	_, err = sh.run(t, "alice", "grep x")
	assert.ErrorIs(t, err, cmd.ErrInvalidFormat)
}

func TestHelpAndExit(t *testing.T) {
	sh := newShell(t)

	out, err := sh.run(t, "bob", "help")
	require.NoError(t, err)
	for _, usage := range []string{"cd <path>", "mkdir [-p] <path>", "grep [-i] [-v] [-n] <pattern> <name>", "ll"} {
		assert.Contains(t, out, usage)
	}

	_, err = sh.run(t, "bob", "exit")
	assert.True(t, errors.Is(err, cmd.ErrExit))
}
