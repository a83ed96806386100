package dentallabserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/interchange"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
	apierrors "github.com/Apurer/dentallab-tracker/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", mapOrderError)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError reports err with the problem template registered for status.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	respondProblem(c, apierrors.FromStatus(status, err.Error()))
}

// respondBindingError reports request payloads gin could not bind. Failed
// validation tags are listed per field.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	respondProblem(c, apierrors.NewValidationProblem(fields))
}

// respondServiceError maps service, interchange, and archive errors.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	case errors.Is(err, ports.ErrArchiveNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "archive"), true
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, application.ErrInvalidLanguage),
		errors.Is(err, domain.ErrInvalidSortKey),
		errors.Is(err, interchange.ErrUnsupportedFormat):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, interchange.ErrMalformedCSV):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrArchiveConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrArchiveNotEnabled):
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
