package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/csvcodec"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/interchange"
)

func TestFromDomainAndToFields(t *testing.T) {
	order := domain.Order{ID: "a1", Fields: domain.Fields{Clinic: "A", Contact: "c", Type: "Crown", ReceivedDate: "2025-10-10", DueDate: "2025-10-20", Status: domain.StatusInProgress, Notes: "n"}}

	out := FromDomain(order)
	require.Equal(t, "In Progress", out.Status)
	require.Equal(t, "a1", out.ID)

	fields := ToFields(OrderInput{Clinic: out.Clinic, Contact: out.Contact, Type: out.Type, ReceivedDate: out.ReceivedDate, DueDate: out.DueDate, Status: out.Status, Notes: out.Notes})
	require.Equal(t, order.Fields, fields)
}

func TestFromDomainList_Empty(t *testing.T) {
	require.NotNil(t, FromDomainList(nil))
}

func TestToQuery(t *testing.T) {
	q, err := ToQuery(QueryParams{Q: "zahn", Status: "All", Sort: "dueDate"})
	require.NoError(t, err)
	require.Equal(t, domain.Query{Text: "zahn", Status: "All", Sort: domain.SortDueDate}, q)

	_, err = ToQuery(QueryParams{Sort: "price"})
	require.ErrorIs(t, err, domain.ErrInvalidSortKey)
}

func TestToQuery_NormalizesStatusFilter(t *testing.T) {
	for _, raw := range []string{"InProgress", "in progress", " IN PROGRESS "} {
		q, err := ToQuery(QueryParams{Status: raw})
		require.NoError(t, err, raw)
		require.Equal(t, string(domain.StatusInProgress), q.Status, raw)
	}

	q, err := ToQuery(QueryParams{Status: "all"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusAll, q.Status)

	q, err = ToQuery(QueryParams{})
	require.NoError(t, err)
	require.Empty(t, q.Status)

	_, err = ToQuery(QueryParams{Status: "Bogus"})
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestFromImportReport(t *testing.T) {
	out := FromImportReport(interchange.ImportReport{
		Imported: 2,
		Skipped:  []csvcodec.SkippedRow{{Line: 4, Reason: "unknown status"}},
	}, "Imported 2 rows.")
	require.Equal(t, 2, out.Imported)
	require.Equal(t, []SkippedRow{{Line: 4, Reason: "unknown status"}}, out.Skipped)
	require.Equal(t, []string{}, out.IgnoredColumns)
}

func TestFromSummary(t *testing.T) {
	out := FromSummary(domain.Summary{Total: 1, ByStatus: []domain.StatusCount{{Status: domain.StatusReceived, Count: 1}}})
	require.Equal(t, Summary{Total: 1, ByStatus: []StatusCount{{Status: "Received", Count: 1}}}, out)
}
