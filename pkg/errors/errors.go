package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeBotError   = "BOT_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
	CodeNoRecords  = "NO_RECORDS"
	CodeEmptyInput = "EMPTY_INPUT"
)

type BotError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BotError) Unwrap() error {
	return e.Cause
}

func NewBotError(message, code string, statusCode int, context map[string]any) *BotError {
	return &BotError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *BotError) WithCause(cause error) *BotError {
	e.Cause = cause
	return e
}

// ErrNoRecords is raised by command handlers when both the TP and the PRO
// record fetch failed. A single-category failure never produces this error.
var ErrNoRecords = &BotError{
	Message:    "no records found",
	Code:       CodeNoRecords,
	StatusCode: 404,
}

// IsNoRecords reports whether err represents the both-categories-failed case.
func IsNoRecords(err error) bool {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr.Code == CodeNoRecords
	}
	return false
}

// EmptyInputError is returned when a command parameter was supplied but turned
// out blank after trimming. An omitted parameter is not an error.
type EmptyInputError struct {
	*BotError
	Expected string
}

func NewEmptyInputError(expected string) *EmptyInputError {
	return &EmptyInputError{
		BotError: &BotError{
			Message:    fmt.Sprintf("expected %s but got empty input", expected),
			Code:       CodeEmptyInput,
			StatusCode: 400,
			Context: map[string]any{
				"expected": expected,
			},
		},
		Expected: expected,
	}
}

// Unwrap exposes the embedded BotError to errors.As. The promoted Unwrap
// would skip straight to the cause.
func (e *EmptyInputError) Unwrap() error { return e.BotError }

type APIError struct {
	*BotError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) Unwrap() error { return e.BotError }

type ValidationError struct {
	*BotError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

func (e *ValidationError) Unwrap() error { return e.BotError }

type CacheError struct {
	*BotError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

func (e *CacheError) Unwrap() error { return e.BotError }

type ServiceError struct {
	*BotError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

func (e *ServiceError) Unwrap() error { return e.BotError }
