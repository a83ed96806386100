package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

func TestArchive_PutGet(t *testing.T) {
	ctx := context.Background()
	archive, err := New(t.TempDir())
	require.NoError(t, err)

	obj, err := archive.Put(ctx, "exports/dentallab_orders_2025-10-15.csv", strings.NewReader("id,clinic"), "text/csv;charset=utf-8")
	require.NoError(t, err)
	require.Equal(t, "exports/dentallab_orders_2025-10-15.csv", obj.Key)
	require.EqualValues(t, 9, obj.Size)
	require.False(t, obj.LastModified.IsZero())

	rc, err := archive.Get(ctx, obj.Key)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "id,clinic", string(body))
}

func TestArchive_NeverOverwrites(t *testing.T) {
	ctx := context.Background()
	archive, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = archive.Put(ctx, "a.csv", strings.NewReader("one"), "")
	require.NoError(t, err)
	_, err = archive.Put(ctx, "a.csv", strings.NewReader("two"), "")
	require.ErrorIs(t, err, ports.ErrArchiveConflict)
}

func TestArchive_Errors(t *testing.T) {
	ctx := context.Background()
	archive, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = archive.Get(ctx, "missing.csv")
	require.ErrorIs(t, err, ports.ErrArchiveNotFound)

	for _, key := range []string{"", "../escape.csv", "/abs.csv"} {
		_, err = archive.Put(ctx, key, strings.NewReader("x"), "")
		require.Error(t, err, key)
	}
}
