// Package errors renders API failures as RFC 7807 problem documents.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is the application/problem+json body returned on failure.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy pointing at the failing request path.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with key set in the extension members. The
// receiver's map is never written to, so templates stay reusable.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type references, relative to the responder base URI.
const (
	TypeValidation    = "/problems/validation-error"
	TypeNotFound      = "/problems/not-found"
	TypeConflict      = "/problems/conflict"
	TypeInternal      = "/problems/internal-error"
	TypeBadRequest    = "/problems/bad-request"
	TypeUnprocessable = "/problems/unprocessable-entity"
	TypeUnavailable   = "/problems/service-unavailable"
)

var (
	ErrBadRequest    = template(TypeBadRequest, "Bad Request", http.StatusBadRequest)
	ErrValidation    = template(TypeValidation, "Validation Error", http.StatusBadRequest)
	ErrNotFound      = template(TypeNotFound, "Resource Not Found", http.StatusNotFound)
	ErrConflict      = template(TypeConflict, "Conflict", http.StatusConflict)
	ErrUnprocessable = template(TypeUnprocessable, "Unprocessable Entity", http.StatusUnprocessableEntity)
	ErrInternal      = template(TypeInternal, "Internal Server Error", http.StatusInternalServerError)
	// ErrUnavailable reports an optional backend, such as the archive, that
	// is not configured.
	ErrUnavailable = template(TypeUnavailable, "Service Unavailable", http.StatusServiceUnavailable)
)

var byStatus = map[int]ProblemDetail{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusServiceUnavailable:  ErrUnavailable,
}

func template(kind, title string, status int) ProblemDetail {
	return ProblemDetail{Type: kind, Title: title, Status: status}
}

// FromStatus picks the template registered for status and attaches detail.
// Unknown statuses become internal errors.
func FromStatus(status int, detail string) ProblemDetail {
	problem, ok := byStatus[status]
	if !ok {
		problem = ErrInternal
	}
	return problem.WithDetail(detail)
}

// NewValidationProblem lists the failed rule per request field.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}

// NewNotFoundProblem names the missing resource, such as an order id or an
// archive key.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s %q not found", resourceType, fmt.Sprint(identifier))).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}
