package handler

import (
	"GameHub_Monitor/internal/monitor-service/api/dto/response"
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", err.Field())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be less than or equal to %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters", err.Field(), err.Param())
	case "hostname_rfc1123|ip":
		return fmt.Sprintf("The %s field is not a valid hostname or ip", err.Field())
	default:
		return fmt.Sprintf("Validation failed for %s with tag %s.", err.Field(), err.Tag())
	}
}

func bindingErrorMessage(err error) string {
	var validatorError validator.ValidationErrors
	if errors.As(err, &validatorError) {
		return formatValidationError(validatorError[0])
	}
	return "Invalid request body"
}

// respondServiceError maps service errors to status codes; anything unknown is logged as a 500.
func respondServiceError(c *gin.Context, l Logger, err error, errDescription string) {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.Response{
			Message: validationErr.Error(),
		})
	case errors.Is(err, apperrors.ErrServerNotFound):
		c.JSON(http.StatusNotFound, response.Response{
			Message: "Server not found",
		})
	case errors.Is(err, apperrors.ErrRegistryNotFound):
		c.JSON(http.StatusNotFound, response.Response{
			Message: "No registry entries configured for game",
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, response.Response{
			Message: "Invalid registration key",
		})
	case errors.Is(err, apperrors.ErrSyncInProgress):
		c.JSON(http.StatusConflict, response.Response{
			Message: "Registry sync already in progress",
		})
	case errors.Is(err, apperrors.ErrFleetSummaryUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Message: "Fleet summary is not available",
		})
	default:
		l.LoggingError(c, err, errDescription, zap.ErrorLevel)
		c.JSON(http.StatusInternalServerError, response.Response{
			Message: "Internal server error",
		})
	}
}

// parseTimeQuery reads an optional RFC 3339 query parameter.
func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Response{
			Message: fmt.Sprintf("Invalid %s, use RFC 3339 format", key),
		})
		return nil, false
	}
	return &t, true
}
