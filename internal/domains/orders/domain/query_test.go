package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureOrders() []Order {
	return []Order{
		{ID: "o1", Fields: Fields{Clinic: "Zahnklinik Berlin", Contact: "dr.bauer@zahnklinik.de", Type: "Crown (Zr)", ReceivedDate: "2025-10-10", DueDate: "2025-10-20", Status: StatusInProgress, Notes: "Shade A2"}},
		{ID: "o2", Fields: Fields{Clinic: "SmileCare Munich", Contact: "info@smilecare.de", Type: "Bridge 3-unit", ReceivedDate: "2025-10-12", DueDate: "2025-10-25", Status: StatusReceived, Notes: "Rush possible"}},
		{ID: "o3", Fields: Fields{Clinic: "Zahnklinik Berlin", Type: "Inlay", ReceivedDate: "2025-09-30", DueDate: "2025-10-05", Status: StatusDelivered}},
		{ID: "o4", Fields: Fields{Clinic: "Dental Hamburg", Contact: "+49 40 123", Type: "Veneer", ReceivedDate: "2025-10-10", Status: StatusCancelled, Notes: "patient moved"}},
		{ID: "o5", Fields: Fields{Clinic: "SmileCare Munich", Type: "Crown", ReceivedDate: "2025-10-01", Status: StatusCompleted}},
	}
}

func ids(orders []Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestApplyQuery_StatusFilter(t *testing.T) {
	result := ApplyQuery(fixtureOrders(), Query{Status: string(StatusReceived)})
	require.Equal(t, []string{"o2"}, ids(result))
}

func TestApplyQuery_StatusFilterIsCaseSensitive(t *testing.T) {
	result := ApplyQuery(fixtureOrders(), Query{Status: "received"})
	require.Empty(t, result)
}

func TestApplyQuery_TextMatchesClinicContactTypeNotes(t *testing.T) {
	orders := fixtureOrders()

	assert.Equal(t, []string{"o3", "o1"}, ids(ApplyQuery(orders, Query{Text: "ZAHN"})))
	assert.Equal(t, []string{"o2"}, ids(ApplyQuery(orders, Query{Text: "info@"})))
	assert.Equal(t, []string{"o4"}, ids(ApplyQuery(orders, Query{Text: "veneer"})))
	assert.Equal(t, []string{"o2"}, ids(ApplyQuery(orders, Query{Text: "rush"})))
	assert.Empty(t, ApplyQuery(orders, Query{Text: "nothing like this"}))
}

func TestApplyQuery_ClinicIsExactMatch(t *testing.T) {
	orders := fixtureOrders()
	assert.Equal(t, []string{"o5", "o2"}, ids(ApplyQuery(orders, Query{Clinic: "SmileCare Munich"})))
	assert.Empty(t, ApplyQuery(orders, Query{Clinic: "SmileCare"}))
}

func TestApplyQuery_FiltersCombine(t *testing.T) {
	result := ApplyQuery(fixtureOrders(), Query{Text: "crown", Clinic: "SmileCare Munich", Status: StatusAll})
	require.Equal(t, []string{"o5"}, ids(result))
}

func TestApplyQuery_SortByReceivedDateIsChronological(t *testing.T) {
	result := ApplyQuery(fixtureOrders(), Query{Sort: SortReceivedDate})
	dates := make([]string, 0, len(result))
	for _, o := range result {
		dates = append(dates, o.ReceivedDate)
	}
	require.True(t, sort.StringsAreSorted(dates))
	require.Len(t, result, 5)
}

func TestApplyQuery_SortIsStable(t *testing.T) {
	// o1 and o4 share 2025-10-10; input order must survive.
	result := ApplyQuery(fixtureOrders(), Query{})
	require.Equal(t, []string{"o3", "o5", "o1", "o4", "o2"}, ids(result))
}

func TestApplyQuery_SortByOtherKeys(t *testing.T) {
	orders := fixtureOrders()
	assert.Equal(t, []string{"o4", "o5", "o3", "o1", "o2"}, ids(ApplyQuery(orders, Query{Sort: SortDueDate})))
	assert.Equal(t, []string{"o4", "o2", "o5", "o1", "o3"}, ids(ApplyQuery(orders, Query{Sort: SortClinic})))
	assert.Equal(t, []string{"o4", "o5", "o3", "o1", "o2"}, ids(ApplyQuery(orders, Query{Sort: SortStatus})))
}

func TestApplyQuery_UnknownSortFallsBackToReceivedDate(t *testing.T) {
	orders := fixtureOrders()
	require.Equal(t, ids(ApplyQuery(orders, Query{})), ids(ApplyQuery(orders, Query{Sort: "priority"})))
}

func TestApplyQuery_DoesNotMutateInput(t *testing.T) {
	orders := fixtureOrders()
	_ = ApplyQuery(orders, Query{Sort: SortClinic})
	require.Equal(t, ids(fixtureOrders()), ids(orders))
}

func TestApplyQuery_StatusPartitionCoversEveryOrderOnce(t *testing.T) {
	orders := append(fixtureOrders(), Order{ID: "odd", Fields: Fields{Clinic: "X", Status: "legacy"}})
	counts := map[string]int{}
	for _, s := range Statuses() {
		for _, o := range ApplyQuery(orders, Query{Status: string(s)}) {
			counts[o.ID]++
		}
	}
	for _, o := range orders {
		if o.Status.Valid() {
			require.Equal(t, 1, counts[o.ID], o.ID)
		} else {
			require.Zero(t, counts[o.ID], o.ID)
		}
	}
}

func TestApplyQuery_StatusScenario(t *testing.T) {
	orders := []Order{
		{ID: "A", Fields: Fields{Clinic: "a", Status: StatusReceived}},
		{ID: "B", Fields: Fields{Clinic: "b", Status: StatusCompleted}},
	}
	require.Equal(t, []string{"B"}, ids(ApplyQuery(orders, Query{Status: string(StatusCompleted)})))

	orders[0].Status = StatusDelivered
	require.Equal(t, []string{"B", "A"}, ids(ApplyQuery(orders, Query{Status: StatusAll, Sort: SortStatus})))
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	require.Equal(t, SortReceivedDate, key)

	key, err = ParseSortKey("dueDate")
	require.NoError(t, err)
	require.Equal(t, SortDueDate, key)

	_, err = ParseSortKey("notes")
	require.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestParseStatusFilter(t *testing.T) {
	for raw, want := range map[string]string{
		"":             "",
		"All":          StatusAll,
		"all":          StatusAll,
		"InProgress":   string(StatusInProgress),
		" in progress": string(StatusInProgress),
		"DELIVERED":    string(StatusDelivered),
	} {
		got, err := ParseStatusFilter(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseStatusFilter("Bogus")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplyQuery_NormalizedFilterMatchesStoredStatus(t *testing.T) {
	status, err := ParseStatusFilter("inprogress")
	require.NoError(t, err)
	require.Equal(t, []string{"o1"}, ids(ApplyQuery(fixtureOrders(), Query{Status: status})))
}
