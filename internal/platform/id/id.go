// Package id issues opaque record identifiers.
package id

import (
	"github.com/google/uuid"
)

// Generator produces identifiers that are unique within the process lifetime.
type Generator interface {
	Next() string
}

// Func adapts a plain function to Generator.
type Func func() string

// Next calls f.
func (f Func) Next() string { return f() }

// TimeOrdered issues UUIDv7 strings: a millisecond timestamp followed by
// random bits. google/uuid keeps v7 values monotonic inside one process, so
// two calls in the same millisecond still differ and sort in call order.
type TimeOrdered struct{}

// New returns the default generator.
func New() TimeOrdered { return TimeOrdered{} }

// Next returns a fresh identifier. It falls back to a v4 UUID if the
// random source fails while building the v7 value.
func (TimeOrdered) Next() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}

var _ Generator = TimeOrdered{}
