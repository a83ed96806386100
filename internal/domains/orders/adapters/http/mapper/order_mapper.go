package mapper

import (
	"fmt"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/csvcodec"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/interchange"
)

// Order is the HTTP representation of a lab order.
type Order struct {
	ID           string `json:"id"`
	Clinic       string `json:"clinic"`
	Contact      string `json:"contact"`
	Type         string `json:"type"`
	ReceivedDate string `json:"receivedDate"`
	DueDate      string `json:"dueDate"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

// OrderInput captures create and update payloads. Every field is replaced on
// update; an empty status means Received.
type OrderInput struct {
	Clinic       string `json:"clinic" binding:"required"`
	Contact      string `json:"contact"`
	Type         string `json:"type"`
	ReceivedDate string `json:"receivedDate"`
	DueDate      string `json:"dueDate"`
	Status       string `json:"status" binding:"omitempty,orderstatus"`
	Notes        string `json:"notes"`
}

// StatusInput is the payload of a status change.
type StatusInput struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// QueryParams are the list filters accepted on the query string.
type QueryParams struct {
	Q      string `form:"q"`
	Status string `form:"status"`
	Clinic string `form:"clinic"`
	Sort   string `form:"sort"`
}

// StatusCount is one summary bucket.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summary is the HTTP representation of the collection summary.
type Summary struct {
	Total    int           `json:"total"`
	ByStatus []StatusCount `json:"byStatus"`
}

// SkippedRow reports an import row that was not installed.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportReport is returned by the import endpoints.
type ImportReport struct {
	Imported       int          `json:"imported"`
	Message        string       `json:"message"`
	Skipped        []SkippedRow `json:"skipped"`
	IgnoredColumns []string     `json:"ignoredColumns"`
}

// ArchiveImportRequest names an archived export to import.
type ArchiveImportRequest struct {
	Key string `json:"key" binding:"required"`
}

// Language is the language preference payload.
type Language struct {
	Language  string `json:"language" binding:"required"`
	Direction string `json:"direction,omitempty"`
}

// FromDomain maps an order into its HTTP representation.
func FromDomain(o domain.Order) Order {
	return Order{
		ID:           o.ID,
		Clinic:       o.Clinic,
		Contact:      o.Contact,
		Type:         o.Type,
		ReceivedDate: o.ReceivedDate,
		DueDate:      o.DueDate,
		Status:       string(o.Status),
		Notes:        o.Notes,
	}
}

// FromDomainList maps a slice of orders, never returning nil.
func FromDomainList(orders []domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomain(o))
	}
	return out
}

// ToFields maps a payload onto editable order fields.
func ToFields(in OrderInput) domain.Fields {
	return domain.Fields{
		Clinic:       in.Clinic,
		Contact:      in.Contact,
		Type:         in.Type,
		ReceivedDate: in.ReceivedDate,
		DueDate:      in.DueDate,
		Status:       domain.Status(in.Status),
		Notes:        in.Notes,
	}
}

// ToQuery validates the sort key and status filter and builds a domain
// query with the canonical status spelling.
func ToQuery(p QueryParams) (domain.Query, error) {
	key, err := domain.ParseSortKey(p.Sort)
	if err != nil {
		return domain.Query{}, err
	}
	status, err := domain.ParseStatusFilter(p.Status)
	if err != nil {
		return domain.Query{}, fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
	}
	return domain.Query{Text: p.Q, Status: status, Clinic: p.Clinic, Sort: key}, nil
}

// FromSummary maps the collection summary.
func FromSummary(s domain.Summary) Summary {
	out := Summary{Total: s.Total, ByStatus: make([]StatusCount, 0, len(s.ByStatus))}
	for _, c := range s.ByStatus {
		out.ByStatus = append(out.ByStatus, StatusCount{Status: string(c.Status), Count: c.Count})
	}
	return out
}

// FromImportReport maps an import outcome; message is the localized
// "Imported N rows." line.
func FromImportReport(r interchange.ImportReport, message string) ImportReport {
	out := ImportReport{
		Imported:       r.Imported,
		Message:        message,
		Skipped:        fromSkipped(r.Skipped),
		IgnoredColumns: r.IgnoredColumns,
	}
	if out.IgnoredColumns == nil {
		out.IgnoredColumns = []string{}
	}
	return out
}

func fromSkipped(rows []csvcodec.SkippedRow) []SkippedRow {
	out := make([]SkippedRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, SkippedRow{Line: r.Line, Reason: r.Reason})
	}
	return out
}
