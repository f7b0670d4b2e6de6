package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mwantia/vfsh/backend/memory"
	"github.com/mwantia/vfsh/backend/record"
	"github.com/mwantia/vfsh/data"
	vfserrors "github.com/mwantia/vfsh/data/errors"
	"github.com/mwantia/vfsh/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func file(parent, name, owner string, mode data.FileMode) *data.Entry {
	return &data.Entry{
		ParentPath: parent,
		Kind:       data.KindFile,
		Name:       name,
		Size:       10,
		Mode:       mode,
		Owner:      owner,
		CreatedAt:  "2024-03-01",
		SelfPath:   data.Join(parent, name),
	}
}

func TestEntryStore_Lookups(t *testing.T) {
	es := store.NewEntryStore(memory.NewMemoryBackend())

	home := data.NewDirectory("/", "home", "root", now)
	alice := data.NewDirectory("/home", "alice", "alice", now)
	notes := file("/home/alice", "notes.txt", "alice", 0644)

	for _, entry := range []*data.Entry{home, alice, notes} {
		require.NoError(t, es.Insert(entry))
	}

	assert.Equal(t, alice, es.FindBySelfPath("/home/alice"))
	assert.Nil(t, es.FindBySelfPath("/home/alice", data.KindFile))
	assert.Equal(t, notes, es.FindByNameInDir("notes.txt", "/home/alice", data.KindFile))
	assert.Nil(t, es.FindByNameInDir("notes.txt", "/home"))

	children := es.FindByPath("/home")
	require.Len(t, children, 1)
	assert.Equal(t, "alice", children[0].Name)

	assert.True(t, es.HasChildren("/home/alice"))
	assert.False(t, es.HasChildren("/var"))
	assert.False(t, es.HasChildren("/home/alice", data.KindDirectory))
	assert.True(t, es.HasChildren("/home", data.KindDirectory))
	assert.Equal(t, []string{"/home", "/home/alice", "/home/alice/notes.txt"}, es.SelfPaths())
}

func TestEntryStore_ReturnsCopies(t *testing.T) {
	es := store.NewEntryStore(memory.NewMemoryBackend())
	require.NoError(t, es.Insert(data.NewDirectory("/", "etc", "root", now)))

	found := es.FindBySelfPath("/etc")
	found.Owner = "mallory"

	assert.Equal(t, "root", es.FindBySelfPath("/etc").Owner)
}

func TestEntryStore_InsertDuplicate(t *testing.T) {
	es := store.NewEntryStore(memory.NewMemoryBackend())
	require.NoError(t, es.Insert(data.NewDirectory("/", "var", "root", now)))

	err := es.Insert(data.NewDirectory("/", "var", "bob", now))
	assert.ErrorIs(t, err, vfserrors.ErrAlreadyExists)
	assert.Equal(t, 1, es.Len())

	// A file may share parentPath and name with a directory
	require.NoError(t, es.Insert(file("/", "var", "root", 0644)))
	assert.Equal(t, 2, es.Len())
}

func TestEntryStore_Capacity(t *testing.T) {
	es := store.NewEntryStore(memory.NewMemoryBackend(), store.WithCapacity(3))

	for i := range 3 {
		require.NoError(t, es.Insert(data.NewDirectory("/", fmt.Sprintf("d%d", i), "root", now)))
	}

	err := es.Insert(data.NewDirectory("/", "overflow", "root", now))
	assert.ErrorIs(t, err, vfserrors.ErrCapacity)
	assert.Equal(t, 3, es.Len())
	assert.Equal(t, 3, es.Capacity())
	assert.Equal(t, "memory", es.BackendName())
	assert.Nil(t, es.FindBySelfPath("/overflow"))
}

func TestEntryStore_Update(t *testing.T) {
	es := store.NewEntryStore(memory.NewMemoryBackend())
	entry := file("/", "a.txt", "alice", 0644)
	require.NoError(t, es.Insert(entry))

	changed, err := es.Update(entry, data.OwnerUpdate("bob"))
	require.NoError(t, err)
	assert.True(t, changed)

	// Every index observes the change
	assert.Equal(t, "bob", es.FindBySelfPath("/a.txt").Owner)
	assert.Equal(t, "bob", es.FindByNameInDir("a.txt", "/").Owner)
	assert.Equal(t, "bob", es.FindByPath("/")[0].Owner)

	_, err = es.Update(file("/", "missing", "bob", 0), data.OwnerUpdate("bob"))
	assert.ErrorIs(t, err, vfserrors.ErrNotFound)
}

// TestEntryStore_PersistRoundTrip verifies persisting then reloading yields an identical entry set.
func TestEntryStore_PersistRoundTrip(t *testing.T) {
	ctx := t.Context()
	rb := record.NewRecordBackend(&record.RecordBackendConfig{Directory: t.TempDir(), CreateMissing: true})
	require.NoError(t, rb.Open(ctx))

	es := store.NewEntryStore(rb)
	require.NoError(t, es.Load(ctx))

	inserted := []*data.Entry{
		data.NewDirectory("/", "home", "root", now),
		data.NewDirectory("/home", "alice", "alice", now),
		file("/home/alice", ".bashrc", "alice", 0600),
	}
	inserted[2].Hidden = true

	for _, entry := range inserted {
		require.NoError(t, es.Insert(entry))
	}
	require.NoError(t, es.Persist(ctx))

	reloaded := store.NewEntryStore(rb)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, es.Entries(), reloaded.Entries())
	assert.Equal(t, inserted, reloaded.Entries())
}

func TestEntryStore_LoadOverCapacity(t *testing.T) {
	ctx := t.Context()
	mb := memory.NewMemoryBackend()
	require.NoError(t, mb.SaveEntries(ctx, []*data.Entry{
		data.NewDirectory("/", "a", "root", now),
		data.NewDirectory("/", "b", "root", now),
	}))

	es := store.NewEntryStore(mb, store.WithCapacity(1))
	assert.ErrorIs(t, es.Load(ctx), vfserrors.ErrCapacity)
}

type failingBackend struct {
	*memory.MemoryBackend
}

func (failingBackend) SaveEntries(ctx context.Context, entries []*data.Entry) error {
	return errors.New("disk full")
}

func TestEntryStore_PersistFailure(t *testing.T) {
	es := store.NewEntryStore(failingBackend{memory.NewMemoryBackend()})
	require.NoError(t, es.Insert(data.NewDirectory("/", "tmp", "root", now)))

	err := es.Persist(t.Context())
	assert.ErrorIs(t, err, vfserrors.ErrPersist)
	assert.ErrorContains(t, err, "disk full")
}
