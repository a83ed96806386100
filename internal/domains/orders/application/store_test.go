package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/memory"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
	"github.com/Apurer/dentallab-tracker/internal/platform/id"
)

func sequentialIDs() id.Generator {
	n := 0
	return id.Func(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func fixedClock() time.Time {
	return time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)
}

func newTestStore(slot ports.SlotStore) *Store {
	return NewStore(slot, WithIDGenerator(sequentialIDs()), WithClock(fixedClock))
}

// flakySlot fails writes while broken is set.
type flakySlot struct {
	*ordermemory.SlotStore
	broken bool
}

func (f *flakySlot) Put(ctx context.Context, key string, value []byte) error {
	if f.broken {
		return errors.New("quota exceeded")
	}
	return f.SlotStore.Put(ctx, key, value)
}

func TestCreate_DefaultsAndPrepends(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())

	first, err := store.Create(ctx, domain.Fields{Clinic: "Zahnklinik Berlin"})
	require.NoError(t, err)
	require.Equal(t, "id-1", first.ID)
	require.Equal(t, domain.StatusReceived, first.Status)
	require.Equal(t, "2025-10-15", first.ReceivedDate)

	second, err := store.Create(ctx, domain.Fields{Clinic: "SmileCare Munich", ReceivedDate: "2025-10-01", Status: "in progress"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, second.Status)
	require.Equal(t, "2025-10-01", second.ReceivedDate)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"id-2", "id-1"}, orderIDs(orders))
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())

	_, err := store.Create(ctx, domain.Fields{Clinic: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyClinic)

	_, err = store.Create(ctx, domain.Fields{Clinic: "A", Status: "Shipped"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestMutations_PersistAcrossInstances(t *testing.T) {
	ctx := context.Background()
	slot := ordermemory.NewSlotStore()
	store := newTestStore(slot)

	created, err := store.Create(ctx, domain.Fields{Clinic: "A", Notes: "He said \"hi\""})
	require.NoError(t, err)
	_, err = store.SetStatus(ctx, created.ID, domain.StatusCompleted)
	require.NoError(t, err)

	reloaded := NewStore(slot)
	orders, err := reloaded.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, created.ID, orders[0].ID)
	require.Equal(t, domain.StatusCompleted, orders[0].Status)
	require.Equal(t, "He said \"hi\"", orders[0].Notes)
}

func TestPersistedBlobShape(t *testing.T) {
	ctx := context.Background()
	slot := ordermemory.NewSlotStore()
	store := newTestStore(slot)

	_, err := store.Create(ctx, domain.Fields{Clinic: "A", Status: domain.StatusInProgress})
	require.NoError(t, err)

	raw, err := slot.Get(ctx, DefaultSlotKey)
	require.NoError(t, err)
	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "id-1", decoded[0]["id"])
	assert.Equal(t, "In Progress", decoded[0]["status"])
	assert.Equal(t, "2025-10-15", decoded[0]["receivedDate"])
	assert.Contains(t, decoded[0], "dueDate")
}

func TestLoad_MissingOrCorruptSlotIsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := ordermemory.NewSlotStore()

	orders, err := NewStore(slot).Load(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	for _, blob := range []string{`{not json`, `{"id":"x"}`, `null`} {
		require.NoError(t, slot.Put(ctx, DefaultSlotKey, []byte(blob)))
		orders, err = NewStore(slot).Load(ctx)
		require.NoError(t, err, blob)
		require.Empty(t, orders, blob)
	}
}

func TestLoad_TrustsStoredStatuses(t *testing.T) {
	ctx := context.Background()
	slot := ordermemory.NewSlotStore()
	require.NoError(t, slot.Put(ctx, DefaultSlotKey, []byte(`[{"id":"a","clinic":"","status":"legacy"}]`)))

	orders, err := NewStore(slot).Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, domain.Status("legacy"), orders[0].Status)
}

func TestLoad_CustomSlotKey(t *testing.T) {
	ctx := context.Background()
	slot := ordermemory.NewSlotStore()
	store := NewStore(slot, WithSlotKey("lab_b"))
	_, err := store.Create(ctx, domain.Fields{Clinic: "A"})
	require.NoError(t, err)

	_, err = slot.Get(ctx, DefaultSlotKey)
	require.ErrorIs(t, err, ports.ErrSlotNotFound)
	_, err = slot.Get(ctx, "lab_b")
	require.NoError(t, err)
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{SlotStore: ordermemory.NewSlotStore()}
	store := newTestStore(slot)

	created, err := store.Create(ctx, domain.Fields{Clinic: "A"})
	require.NoError(t, err)

	slot.broken = true
	_, err = store.Create(ctx, domain.Fields{Clinic: "B"})
	require.Error(t, err)
	_, err = store.Update(ctx, created.ID, domain.Fields{Clinic: "Z"})
	require.Error(t, err)
	require.Error(t, store.Delete(ctx, created.ID))
	require.Error(t, store.Clear(ctx))

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "A", orders[0].Clinic)

	reloaded, err := NewStore(slot).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, orders, reloaded)
}

func TestUpdate_ReplacesFieldsAndKeepsID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())
	created, err := store.Create(ctx, domain.Fields{Clinic: "A", Contact: "a@x", Notes: "n"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, created.ID, domain.Fields{Clinic: "B", Status: domain.StatusDelivered})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "B", updated.Clinic)
	require.Empty(t, updated.Contact)
	require.Empty(t, updated.Notes)
	require.Equal(t, domain.StatusDelivered, updated.Status)

	_, err = store.Update(ctx, created.ID, domain.Fields{Clinic: ""})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = store.Update(ctx, "missing", domain.Fields{Clinic: "B"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())
	created, err := store.Create(ctx, domain.Fields{Clinic: "A"})
	require.NoError(t, err)

	updated, err := store.SetStatus(ctx, created.ID, "COMPLETED")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, updated.Status)

	_, err = store.SetStatus(ctx, created.ID, "Lost")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = store.SetStatus(ctx, "missing", domain.StatusReceived)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())
	a, err := store.Create(ctx, domain.Fields{Clinic: "A"})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Fields{Clinic: "B"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "missing"))
	require.NoError(t, store.Delete(ctx, a.ID))

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"id-2"}, orderIDs(orders))

	_, err = store.Get(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	slot := ordermemory.NewSlotStore()
	store := newTestStore(slot)
	require.NoError(t, store.LoadSample(ctx))
	require.NoError(t, store.Clear(ctx))

	raw, err := slot.Get(ctx, DefaultSlotKey)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))
}

func TestReplaceAll_AssignsMissingIDsAndDedupes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())
	_, err := store.Create(ctx, domain.Fields{Clinic: "old"})
	require.NoError(t, err)

	err = store.ReplaceAll(ctx, []domain.Order{
		{ID: "x", Fields: domain.Fields{Clinic: "first"}},
		{Fields: domain.Fields{Clinic: "blank"}},
		{ID: "x", Fields: domain.Fields{Clinic: "second"}},
	})
	require.NoError(t, err)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "id-2"}, orderIDs(orders))
	require.Equal(t, "first", orders[0].Clinic)
}

func TestImport_PrependsAndReplacesSameID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())
	kept, err := store.Create(ctx, domain.Fields{Clinic: "kept"})
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll(ctx, []domain.Order{
		{ID: "dup", Fields: domain.Fields{Clinic: "stale"}},
		kept,
	}))

	n, err := store.Import(ctx, []domain.Order{
		{Fields: domain.Fields{Clinic: "new", Status: domain.StatusReceived}},
		{ID: "dup", Fields: domain.Fields{Clinic: "fresh", Status: domain.StatusCompleted}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"id-2", "dup", kept.ID}, orderIDs(orders))
	require.Equal(t, "fresh", orders[1].Clinic)
}

func TestImport_FailedWriteInstallsNothing(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{SlotStore: ordermemory.NewSlotStore(), broken: true}
	store := newTestStore(slot)

	n, err := store.Import(ctx, []domain.Order{{Fields: domain.Fields{Clinic: "A"}}})
	require.Error(t, err)
	require.Zero(t, n)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestLoadSample(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ordermemory.NewSlotStore())
	require.NoError(t, store.LoadSample(ctx))

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "Zahnklinik Berlin", orders[0].Clinic)
	require.Equal(t, domain.StatusInProgress, orders[0].Status)
	require.Equal(t, "SmileCare Munich", orders[1].Clinic)
	require.NotEmpty(t, orders[0].ID)
	require.NotEqual(t, orders[0].ID, orders[1].ID)

	require.NoError(t, store.LoadSample(ctx))
	again, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, again, 2)
	require.NotEqual(t, orders[0].ID, again[0].ID)
}

func TestQuerySummaryAndClinics(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())
	require.NoError(t, store.LoadSample(ctx))
	_, err := store.Create(ctx, domain.Fields{Clinic: "Zahnklinik Berlin", ReceivedDate: "2025-09-01", Status: domain.StatusDelivered})
	require.NoError(t, err)

	result, err := store.Query(ctx, domain.Query{Text: "zahn", Status: domain.StatusAll})
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, "2025-09-01", result[0].ReceivedDate)

	summary, err := store.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, []domain.StatusCount{
		{Status: domain.StatusReceived, Count: 1},
		{Status: domain.StatusInProgress, Count: 1},
		{Status: domain.StatusCompleted, Count: 0},
		{Status: domain.StatusDelivered, Count: 1},
		{Status: domain.StatusCancelled, Count: 0},
	}, summary.ByStatus)

	clinics, err := store.Clinics(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Zahnklinik Berlin", "SmileCare Munich"}, clinics)
}

func TestList_ReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ordermemory.NewSlotStore())
	_, err := store.Create(ctx, domain.Fields{Clinic: "A"})
	require.NoError(t, err)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	orders[0].Clinic = "mutated"

	again, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "A", again[0].Clinic)
}

func TestSave_WritesCurrentCollection(t *testing.T) {
	ctx := context.Background()
	source := ordermemory.NewSlotStore()
	require.NoError(t, source.Put(ctx, DefaultSlotKey, []byte(`[{"id":"a","clinic":"A","status":"Received"}]`)))
	store := NewStore(source)
	_, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, source.Put(ctx, DefaultSlotKey, []byte(`[]`)))

	require.NoError(t, store.Save(ctx))
	orders, err := NewStore(source).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, orderIDs(orders))
}

func orderIDs(orders []domain.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
