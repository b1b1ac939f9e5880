package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	documentdomain "github.com/mrossi-dev/gestionale/internal/document/domain"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
	subjectdomain "github.com/mrossi-dev/gestionale/internal/subject/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware turns errors collected on the context into a
// JSON error response, unless a handler already wrote one.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return documentdomain.NewValidationError("request", "malformed request body")
}

func mapError(err error) (int, errorPayload) {
	var verr *documentdomain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: verr.Message,
			Field:   verr.Field,
		}
	}

	var ferr *documentdomain.FiscalValidationError
	if errors.As(err, &ferr) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "fiscal_validation_error",
			Message: ferr.Message,
			Rule:    ferr.Rule,
		}
	}

	var serr *documentdomain.StateError
	if errors.As(err, &serr) {
		return http.StatusConflict, errorPayload{
			Type:    "state_error",
			Message: serr.Error(),
		}
	}

	switch {
	case errors.Is(err, documentdomain.ErrNotFound),
		errors.Is(err, subjectdomain.ErrNotFound),
		errors.Is(err, numberingdomain.ErrCounterNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, documentdomain.ErrNumberingConflict),
		errors.Is(err, numberingdomain.ErrCounterContention):
		return http.StatusInternalServerError, errorPayload{
			Type:    "numbering_conflict",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
