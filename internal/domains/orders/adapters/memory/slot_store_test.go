package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

func TestSlotStore_MissingKey(t *testing.T) {
	store := NewSlotStore()
	_, err := store.Get(context.Background(), "dentallab_orders")
	require.ErrorIs(t, err, ports.ErrSlotNotFound)
}

func TestSlotStore_PutOverwritesAndCopies(t *testing.T) {
	ctx := context.Background()
	store := NewSlotStore()

	value := []byte(`[]`)
	require.NoError(t, store.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), got)

	got[0] = 'y'
	require.NoError(t, store.Put(ctx, "k", []byte(`en`)))
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`en`), again)
}
