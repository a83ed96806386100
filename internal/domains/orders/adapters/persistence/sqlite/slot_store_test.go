package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

func openTemp(t *testing.T) (*SlotStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "lab.db")
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestSlotStore_GetMissing(t *testing.T) {
	store, _ := openTemp(t)
	_, err := store.Get(context.Background(), "dentallab_orders")
	require.ErrorIs(t, err, ports.ErrSlotNotFound)
}

func TestSlotStore_PutUpserts(t *testing.T) {
	ctx := context.Background()
	store, path := openTemp(t)
	require.Equal(t, path, store.Path())

	require.NoError(t, store.Put(ctx, "k", []byte(`[1]`)))
	require.NoError(t, store.Put(ctx, "k", []byte(`[2]`)))
	require.NoError(t, store.Put(ctx, "other", []byte(`ar`)))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `[2]`, string(got))

	got, err = store.Get(ctx, "other")
	require.NoError(t, err)
	require.Equal(t, `ar`, string(got))
}

func TestSlotStore_OrdersSurviveReopen(t *testing.T) {
	ctx := context.Background()
	store, path := openTemp(t)

	orders := application.NewStore(store)
	created, err := orders.Create(ctx, domain.Fields{Clinic: "Zahnklinik Berlin", Notes: "Shade A2"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := application.NewStore(reopened).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Order{created}, loaded)
}
