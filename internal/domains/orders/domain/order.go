package domain

import (
	"errors"
	"strings"
)

// Status enumerates the lifecycle stages of a lab order.
type Status string

const (
	StatusReceived   Status = "Received"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// StatusAll is the query sentinel that disables status filtering.
const StatusAll = "All"

var (
	ErrEmptyClinic   = errors.New("clinic name is required")
	ErrInvalidStatus = errors.New("order status is invalid")
)

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusReceived, StatusInProgress, StatusCompleted, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is one of the five canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusCompleted, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus maps user or file input onto a canonical status. Letter case
// and the space in "In Progress" are ignored.
func ParseStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	for _, s := range Statuses() {
		if strings.ToLower(strings.ReplaceAll(string(s), " ", "")) == key {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Fields carries the caller-editable part of an order.
type Fields struct {
	Clinic       string
	Contact      string
	Type         string
	ReceivedDate string
	DueDate      string
	Status       Status
	Notes        string
}

// Order is a dental lab work order. ID never changes after creation.
type Order struct {
	ID string
	Fields
}

// NewOrder builds an order from user-supplied fields, defaulting an empty
// status to Received and enforcing the creation invariants.
func NewOrder(id string, fields Fields) (Order, error) {
	order := Order{ID: id, Fields: fields}
	if err := order.UpdateStatus(fields.Status); err != nil {
		return Order{}, err
	}
	if err := order.Validate(); err != nil {
		return Order{}, err
	}
	return order, nil
}

// Validate enforces the invariants of the normal edit path.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.Clinic) == "" {
		return ErrEmptyClinic
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// UpdateStatus accepts only known states and defaults to Received.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusReceived
	}
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	o.Status = parsed
	return nil
}

// Replace overwrites every editable field, keeping the identifier.
func (o *Order) Replace(fields Fields) error {
	next := Order{ID: o.ID, Fields: fields}
	if err := next.UpdateStatus(fields.Status); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*o = next
	return nil
}
