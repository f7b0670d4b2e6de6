package postgres_test

import (
	"os"
	"testing"

	"github.com/mwantia/vfsh/backend/postgres"
	"github.com/mwantia/vfsh/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresBackend_Entries runs against the database in VFSH_TEST_POSTGRES_URL.
func TestPostgresBackend_Entries(t *testing.T) {
	url := os.Getenv("VFSH_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("VFSH_TEST_POSTGRES_URL not set")
	}

	ctx := t.Context()
	pb, err := postgres.NewPostgresBackend(ctx, url)
	require.NoError(t, err)
	require.NoError(t, pb.Open(ctx))
	defer pb.Close(ctx)

	entries := []*data.Entry{
		{ParentPath: "/", Kind: data.KindDirectory, Name: "srv", Size: 4096, Mode: 0750, Owner: "root", CreatedAt: "2024-05-01", SelfPath: "/srv"},
		{ParentPath: "/srv", Kind: data.KindFile, Name: "notes.txt", Size: 7, Mode: 0644, Owner: "alice", CreatedAt: "2024-05-02", SelfPath: "/srv/notes.txt"},
	}
	require.NoError(t, pb.SaveEntries(ctx, entries))

	loaded, err := pb.LoadEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestPostgresBackend_InvalidConnString(t *testing.T) {
	_, err := postgres.NewPostgresBackend(t.Context(), "postgres://%zz")
	assert.Error(t, err)
}
