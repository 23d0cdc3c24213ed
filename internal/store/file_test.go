package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgoedu/imgo-backend/internal/model"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	st := NewFileStore(path, zerolog.Nop())
	ctx := context.Background()

	db, err := st.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, db.Leads)

	db.Leads = append(db.Leads, model.Lead{ID: "l1", Email: "a@b.co"})
	db.Events = append(db.Events, model.Event{ID: "e1", SessionID: "s1", Name: "page_view"})
	require.NoError(t, st.Write(ctx, db))

	got, err := st.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got.Leads, 1)
	assert.Equal(t, "a@b.co", got.Leads[0].Email)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "page_view", got.Events[0].Name)
}

func TestFileStoreCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	st := NewFileStore(path, zerolog.Nop())
	db, err := st.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, db.Events)
	assert.Empty(t, db.Leads)
	assert.Empty(t, db.Agreements)
}

func TestFileStoreWriteFailureIsReported(t *testing.T) {
	// Pointing the store at a path whose parent is a file forces MkdirAll to
	// fail; the error must surface instead of being swallowed.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	st := NewFileStore(filepath.Join(blocker, "db.json"), zerolog.Nop())
	err := st.Write(context.Background(), Database{})
	assert.Error(t, err)
}

func TestCapTail(t *testing.T) {
	list := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4, 5}, CapTail(list, 3))
	assert.Equal(t, list, CapTail(list, 5))
	assert.Equal(t, list, CapTail(list, 10))
}
