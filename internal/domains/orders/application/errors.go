package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrNotFound signals no live order carries the requested id.
	ErrNotFound = ports.ErrNotFound
	// ErrInvalidLanguage signals an unsupported UI language code.
	ErrInvalidLanguage = errors.New("unsupported language")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyClinic) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidSortKey) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
