// Package errors provides standardized error handling for the scoring service.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeMissingCriticalData    ErrorCode = "MISSING_CRITICAL_DATA"
	ErrCodeScoreComputationFailed ErrorCode = "SCORE_COMPUTATION_FAILED"
)

// MissingCriticalDataMessage is the fixed client-facing detail returned when
// net or gross salary is absent. The wording is part of the API contract.
const MissingCriticalDataMessage = "Critical salary information is missing. Cannot calculate score."

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSchemaValidationFailedError creates a non-retryable client error for a
// request body that does not match the declared schema.
func NewSchemaValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaValidationFailed,
		Message:   "Request body failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingCriticalDataError creates a non-retryable client error raised by
// the scoring engine when net or gross salary is absent.
func NewMissingCriticalDataError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingCriticalData,
		Message:   MissingCriticalDataMessage,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoreComputationFailedError wraps an unexpected scoring failure.
func NewScoreComputationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreComputationFailed,
		Message:   "Unexpected error during score calculation",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
