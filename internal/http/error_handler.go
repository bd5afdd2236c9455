package http

import (
	"errors"
	"fmt"
	"net/http"

	"library-service/internal/observability"
	apperrors "library-service/pkg/errors"
	"library-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

var sentinelStatus = []struct {
	err     error
	code    int
	message string
}{
	{apperrors.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{apperrors.ErrValidation, http.StatusBadRequest, "Validation error"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, "Bad request"},
	{apperrors.ErrEmailExists, http.StatusConflict, "Email already exists"},
	{apperrors.ErrConflict, http.StatusConflict, "Resource already exists"},
	{apperrors.ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
}

// NewHTTPErrorHandler handles all errors returned by handlers and middleware.
// It maps sentinel errors to HTTP status codes, hides internal errors and
// logs with the request id.
func NewHTTPErrorHandler(log observability.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = observability.NopLogger()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := classify(err)

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = "unknown"
		}

		fields := []observability.Field{
			observability.String("request_id", requestID),
			observability.Int("status", code),
			observability.String("path", c.Request().URL.Path),
			observability.String("error", logger.SanitizeLogMessage(err.Error())),
		}
		if code >= http.StatusInternalServerError {
			log.Error("internal_server_error", fields...)
			// Don't expose internal errors to clients
			message = "Internal server error"
		} else {
			log.Warn("client_error", fields...)
		}

		if err := c.JSON(code, map[string]interface{}{
			"error":      message,
			"request_id": requestID,
		}); err != nil {
			log.Error("error response failed", observability.Error(err))
		}
	}
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprintf("%v", httpErr.Message)
	}

	code := http.StatusInternalServerError
	message := "Internal server error"
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			code, message = s.code, s.message
			break
		}
	}

	// Use the message from AppError if it's a client error
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && code < http.StatusInternalServerError {
		message = appErr.Message
	}

	return code, message
}
