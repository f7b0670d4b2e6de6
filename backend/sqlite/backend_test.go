package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/backend/sqlite"
	"github.com/mwantia/vfsh/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackend_Entries(t *testing.T) {
	ctx := t.Context()
	sb, err := sqlite.NewSQLiteBackend(":memory:")
	require.NoError(t, err)
	require.NoError(t, sb.Open(ctx))
	defer sb.Close(ctx)

	assert.NoError(t, backend.Require(sb, backend.CapabilityEntries, backend.CapabilityUsers))
	assert.Error(t, backend.Require(sb, backend.CapabilityContent))

	entries := []*data.Entry{
		{ParentPath: "/", Kind: data.KindDirectory, Name: "var", Size: 4096, Mode: 0755, Owner: "root", CreatedAt: "2024-01-01", SelfPath: "/var"},
		{ParentPath: "/var", Kind: data.KindFile, Name: "app.log", Size: 20, Mode: 0640, Owner: "bob", CreatedAt: "2024-01-03", Hidden: true, SelfPath: "/var/app.log"},
	}
	require.NoError(t, sb.SaveEntries(ctx, entries))

	// A second save replaces the first one
	entries = append(entries, data.NewDirectory("/var", "logs", "bob", time.Now()))
	require.NoError(t, sb.SaveEntries(ctx, entries))

	loaded, err := sb.LoadEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestSQLiteBackend_Users(t *testing.T) {
	ctx := t.Context()
	sb, err := sqlite.NewSQLiteBackend(filepath.Join(t.TempDir(), "vfsh.db"))
	require.NoError(t, err)
	require.NoError(t, sb.Open(ctx))
	defer sb.Close(ctx)

	users := []*data.User{
		{ID: "root", HomePath: "/", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "alice", UID: 1000, GID: 1000, HomePath: "/home/alice", CreatedAt: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)},
	}
	require.NoError(t, sb.SaveUsers(ctx, users))

	loaded, err := sb.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, loaded)
}
