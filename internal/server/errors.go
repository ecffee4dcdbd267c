package server

import (
	"errors"
	"net/http"

	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
	claimdomain "github.com/agriwelfare/stockclaims/internal/claim/domain"
	herddomain "github.com/agriwelfare/stockclaims/internal/herd/domain"
	"github.com/agriwelfare/stockclaims/internal/rollout"
	"github.com/agriwelfare/stockclaims/internal/rules"
	"github.com/gin-gonic/gin"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

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
		c.Header("Content-Type", "application/json")
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

func mapError(err error) (int, errorPayload) {
	var validationErr *rules.ValidationError
	if errors.As(err, &validationErr) {
		messages := make([]string, len(validationErr.Violations))
		for i, v := range validationErr.Violations {
			messages[i] = v.String()
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: validationErr.Error(),
			Errors:  messages,
		}
	}

	var dateErr *rollout.DateParseError
	if errors.As(err, &dateErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: dateErr.Error(),
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: "invalid request",
		}
	case errors.Is(err, claimdomain.ErrInvalidTransition):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_transition",
			Message: err.Error(),
		}
	case errors.Is(err, applicationdomain.ErrApplicationNotFound),
		errors.Is(err, claimdomain.ErrClaimNotFound),
		errors.Is(err, herddomain.ErrHerdNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, claimdomain.ErrDuplicateClaim),
		errors.Is(err, herddomain.ErrStaleHerdVersion),
		errors.Is(err, herddomain.ErrDuplicateHerdVersion):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, herddomain.ErrInvalidHerdID):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}
	}

	// Unsupported species/type and pricing gaps land here deliberately:
	// they are deployment faults, not user errors.
	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
