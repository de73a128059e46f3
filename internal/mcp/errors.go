package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/activitylog/internal/domain/activity"
)

// Error codes returned to clients.
const (
	CodeInvalidParams = "INVALID_PARAMS"
	CodeSaveFailed    = "SAVE_FAILED"
	CodeUnknownMethod = "UNKNOWN_METHOD"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

func invalidParams(message string) *APIError {
	return &APIError{Code: CodeInvalidParams, Message: message, RecoveryHint: "Check the tool input schema"}
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, activity.ErrSaveFailed):
		return &APIError{Code: CodeSaveFailed, Message: "activity could not be saved", RecoveryHint: "Check the activity store is writable"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
