package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of every problem response.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates a domain error into a problem. It reports false for
// errors it does not recognise.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents. Relative problem types are prefixed
// with BaseURI, and errors pass through the mappers in order before falling
// back to a 500.
type Responder struct {
	BaseURI string
	mappers []ErrorMapper
}

// NewResponder builds a responder with relative problem types and no mappers.
func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: strings.TrimRight(baseURI, "/")}
}

// NewChainedResponder builds a responder that consults mappers first.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	r := NewResponder(baseURI)
	r.mappers = append(r.mappers, mappers...)
	return r
}

var defaultResponder = NewResponder("")

// Respond writes problem and stops the handler chain.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && strings.HasPrefix(problem.Type, "/") {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError writes the problem that err maps to.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Problem(err))
}

// Problem resolves err through the mappers. A wrapped ProblemDetail is used
// as is and anything else is an internal error.
func (r *Responder) Problem(err error) ProblemDetail {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	return ErrInternal.WithDetail(err.Error())
}

// Respond writes problem with relative problem types.
func Respond(c *gin.Context, problem ProblemDetail) {
	defaultResponder.Respond(c, problem)
}

// HTTPStatusFromError returns the status of a wrapped ProblemDetail, or 500.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
