// internal/common/errors/handler.go
package errors

import (
	"net/http"
	"time"
)

// ErrorHandler normalizes errors and maps them onto HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Normalize ensures we always have a StandardError.
func (h *ErrorHandler) Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeScoreComputationFailed,
		Message:   "Unexpected error during score calculation",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code onto the HTTP status the boundary returns.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeSchemaValidationFailed, ErrCodeMissingCriticalData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// LogError records a normalized error with its request context.
func (h *ErrorHandler) LogError(requestID string, stdErr *StandardError) {
	h.logger.Error("request failed", map[string]interface{}{
		"requestId": requestID,
		"code":      stdErr.Code,
		"message":   stdErr.Message,
		"details":   stdErr.Details,
	})
}
