package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// SortKey names the order field a query result is sorted by.
type SortKey string

const (
	SortReceivedDate SortKey = "receivedDate"
	SortDueDate      SortKey = "dueDate"
	SortClinic       SortKey = "clinic"
	SortStatus       SortKey = "status"
)

var ErrInvalidSortKey = errors.New("sort key is invalid")

// ParseSortKey validates a sort key. An empty key means receivedDate.
func ParseSortKey(raw string) (SortKey, error) {
	switch key := SortKey(strings.TrimSpace(raw)); key {
	case "":
		return SortReceivedDate, nil
	case SortReceivedDate, SortDueDate, SortClinic, SortStatus:
		return key, nil
	default:
		return "", ErrInvalidSortKey
	}
}

// ParseStatusFilter normalizes a status filter onto the canonical spelling
// stored by the write paths. Empty and All disable filtering and are
// returned as given.
func ParseStatusFilter(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return "", nil
	case strings.EqualFold(trimmed, StatusAll):
		return StatusAll, nil
	}
	status, err := ParseStatus(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return string(status), nil
}

// Query describes a filtered, sorted view over the order collection.
// Status is StatusAll, empty, or an exact status string.
type Query struct {
	Text   string
	Status string
	Clinic string
	Sort   SortKey
}

// ApplyQuery filters orders by status, free text and clinic, in that order,
// then stable-sorts ascending by the sort key's string value. The input is
// not modified.
func ApplyQuery(orders []Order, q Query) []Order {
	result := make([]Order, 0, len(orders))
	needle := strings.ToLower(q.Text)
	for _, o := range orders {
		if q.Status != "" && q.Status != StatusAll && string(o.Status) != q.Status {
			continue
		}
		if needle != "" && !matchesText(o, needle) {
			continue
		}
		if q.Clinic != "" && o.Clinic != q.Clinic {
			continue
		}
		result = append(result, o)
	}
	key := q.Sort
	if _, err := ParseSortKey(string(key)); err != nil || key == "" {
		key = SortReceivedDate
	}
	// YYYY-MM-DD compares chronologically only because it is fixed-width.
	slices.SortStableFunc(result, func(a, b Order) int {
		return strings.Compare(a.SortValue(key), b.SortValue(key))
	})
	return result
}

// SortValue returns the string an order is ordered by under key.
func (o Order) SortValue(key SortKey) string {
	switch key {
	case SortDueDate:
		return o.DueDate
	case SortClinic:
		return o.Clinic
	case SortStatus:
		return string(o.Status)
	default:
		return o.ReceivedDate
	}
}

func matchesText(o Order, needle string) bool {
	for _, field := range []string{o.Clinic, o.Contact, o.Type, o.Notes} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
