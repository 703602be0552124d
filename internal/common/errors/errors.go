// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeAddressRequired ErrorCode = "ADDRESS_REQUIRED"
	ErrCodeInputParsing    ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidation      ErrorCode = "VALIDATION_FAILED"
	ErrCodeOutputInvalid   ErrorCode = "OUTPUT_VALIDATION_FAILED"

	ErrCodeParcelProviderFailed ErrorCode = "PARCEL_PROVIDER_FAILED"
	ErrCodeParcelAuthFailed     ErrorCode = "PARCEL_AUTH_FAILED"
	ErrCodeParcelTimeout        ErrorCode = "PARCEL_PROVIDER_TIMEOUT"
	ErrCodePlacesProviderFailed ErrorCode = "PLACES_PROVIDER_FAILED"

	ErrCodeRegistryConnectionFailed ErrorCode = "REGISTRY_CONNECTION_FAILED"
	ErrCodeRegistryQueryFailed      ErrorCode = "REGISTRY_QUERY_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

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

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewAddressRequiredError is returned before any provider is contacted.
func NewAddressRequiredError() *StandardError {
	return newError(ErrCodeAddressRequired, "Address is required", "", false)
}

// NewInputParsingError wraps a variables decode failure.
func NewInputParsingError(err error) *StandardError {
	return newError(ErrCodeInputParsing, "Failed to parse job variables", err.Error(), false)
}

// NewValidationError reports rejected input.
func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidation, "Input validation failed", details, false)
}

// NewOutputValidationError reports a result that does not satisfy the response contract.
func NewOutputValidationError(details string) *StandardError {
	return newError(ErrCodeOutputInvalid, "Output validation failed", details, false)
}

// NewParcelProviderError is retryable: the parcel provider is the only fatal source.
func NewParcelProviderError(err error) *StandardError {
	return newError(ErrCodeParcelProviderFailed, "Error fetching property data", err.Error(), true)
}

// NewParcelAuthError is not retryable; credentials need fixing first.
func NewParcelAuthError(err error) *StandardError {
	return newError(ErrCodeParcelAuthFailed, "Parcel provider rejected credentials", err.Error(), false)
}

func NewParcelTimeoutError(err error) *StandardError {
	return newError(ErrCodeParcelTimeout, "Parcel provider timeout", err.Error(), true)
}

func NewPlacesProviderError(err error) *StandardError {
	return newError(ErrCodePlacesProviderFailed, "Places provider error", err.Error(), true)
}

func NewRegistryConnectionError(err error) *StandardError {
	return newError(ErrCodeRegistryConnectionFailed, "Registry store connection error", err.Error(), true)
}

func NewRegistryQueryError(table string, err error) *StandardError {
	return newError(ErrCodeRegistryQueryFailed, "Registry query error",
		fmt.Sprintf("table: %s, error: %s", table, err.Error()), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeAddressRequired:          "ADDRESS_REQUIRED",
	ErrCodeInputParsing:             "INPUT_PARSING_FAILED",
	ErrCodeValidation:               "VALIDATION_FAILED",
	ErrCodeOutputInvalid:            "OUTPUT_VALIDATION_FAILED",
	ErrCodeParcelProviderFailed:     "PARCEL_PROVIDER_FAILED",
	ErrCodeParcelAuthFailed:         "PARCEL_AUTH_FAILED",
	ErrCodeParcelTimeout:            "PARCEL_PROVIDER_TIMEOUT",
	ErrCodePlacesProviderFailed:     "PLACES_PROVIDER_FAILED",
	ErrCodeRegistryConnectionFailed: "REGISTRY_CONNECTION_FAILED",
	ErrCodeRegistryQueryFailed:      "REGISTRY_QUERY_FAILED",
	ErrCodeInternal:                 "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended job retry count for a code.
// These are Zeebe job retries; provider calls themselves are attempted once per job.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeParcelProviderFailed,
		ErrCodeRegistryConnectionFailed,
		ErrCodeRegistryQueryFailed:
		return 3

	case ErrCodeParcelTimeout,
		ErrCodePlacesProviderFailed:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err looking for a StandardError.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "PARCEL"):
		return "PARCEL_PROVIDER"
	case strings.HasPrefix(codeStr, "PLACES"):
		return "PLACES_PROVIDER"
	case strings.HasPrefix(codeStr, "REGISTRY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ADDRESS") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
