package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/sheet"
)

func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	grid := sheet.New(5)
	require.NoError(t, grid.Put(1, "A", object.NewInt(7), "7"))

	created, err := s.Create(ctx, grid)
	require.NoError(t, err)
	require.Len(t, created.ID, 36)
	require.False(t, created.UpdatedAt.IsZero())

	loaded, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 5, loaded.Grid.Rows())
	cell, err := loaded.Grid.Get(1, "A")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(7), cell.Value())
	require.Equal(t, "7", cell.Formula())

	// The loaded grid is a copy.
	require.NoError(t, loaded.Grid.Put(2, "B", object.NewText("x"), "x"))
	again, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	cell, _ = again.Grid.Get(2, "B")
	require.True(t, cell.IsEmpty())

	require.NoError(t, s.Save(ctx, loaded))
	again, err = s.Get(ctx, created.ID)
	require.NoError(t, err)
	cell, _ = again.Grid.Get(2, "B")
	require.Equal(t, object.NewText("x"), cell.Value())
	require.False(t, again.UpdatedAt.Before(created.UpdatedAt))

	_, err = s.Get(ctx, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "not-an-id")
	require.ErrorIs(t, err, ErrNotFound)

	err = s.Save(ctx, &Sheet{ID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", Grid: grid})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	s, err := Open(context.Background(), "memory:")
	require.NoError(t, err)
	defer s.Close()
	require.IsType(t, &Memory{}, s)
	testStore(t, s)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets.db")
	s, err := Open(context.Background(), "sqlite:"+path)
	require.NoError(t, err)
	defer s.Close()
	require.IsType(t, &SQL{}, s)
	testStore(t, s)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), "mysql://localhost/teksel")
	require.Error(t, err)

	_, err = Open(context.Background(), "::not a url")
	require.Error(t, err)
}

func TestRebind(t *testing.T) {
	s := &SQL{dialect: dialects["postgres"]}
	require.Equal(t, "SELECT 1 WHERE a = $1 AND b = $2", s.rebind("SELECT 1 WHERE a = ? AND b = ?"))
	s = &SQL{dialect: dialects["sqlite3"]}
	require.Equal(t, "a = ?", s.rebind("a = ?"))
}
