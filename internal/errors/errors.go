package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeInvalidArgument marks a violated caller precondition. No
	// network call was made.
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	// ErrorTypeTransport marks a failed network call or an unparseable
	// response body.
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeAPI marks a response that arrived but carried a failing
	// status from the remote service.
	ErrorTypeAPI ErrorType = "api"
	// ErrorTypeAttributeUnavailable marks a read of a detail-only place
	// attribute before the detail fetch was performed.
	ErrorTypeAttributeUnavailable ErrorType = "attribute_unavailable"
	// ErrorTypeInternal is the fallback for anything unexpected.
	ErrorTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type          ErrorType              `json:"type"`
	Code          string                 `json:"code"`
	Message       string                 `json:"message"`
	Details       string                 `json:"details,omitempty"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	Cause         error                  `json:"-"` // Original error, not serialized
	HTTPStatus    int                    `json:"-"` // HTTP status code for API responses
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		HTTPStatus: getDefaultHTTPStatus(errorType),
	}
}

// NewAppErrorWithCause creates a new application error with an underlying cause
func NewAppErrorWithCause(errorType ErrorType, code, message string, cause error) *AppError {
	err := NewAppError(errorType, code, message)
	err.Cause = cause
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// WithCorrelationID adds a correlation ID to the error
func (e *AppError) WithCorrelationID(correlationID string) *AppError {
	e.CorrelationID = correlationID
	return e
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func getDefaultHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeInvalidArgument:
		return http.StatusBadRequest
	case ErrorTypeTransport, ErrorTypeAPI:
		return http.StatusBadGateway
	case ErrorTypeAttributeUnavailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// NewInvalidArgumentError creates an error for a violated precondition.
func NewInvalidArgumentError(message string) *AppError {
	return NewAppError(ErrorTypeInvalidArgument, "INVALID_ARGUMENT", message)
}

// NewTransportError creates an error for a failed HTTP round trip or an
// undecodable response body. The URL is the one actually requested.
func NewTransportError(url string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorTypeTransport, "TRANSPORT_ERROR",
		fmt.Sprintf("Request to URL %s failed", url), cause).
		WithMetadata("url", url)
}

// NewAPIError creates an error for a response whose status field was neither
// OK nor ZERO_RESULTS.
func NewAPIError(url, status string) *AppError {
	return NewAppError(ErrorTypeAPI, "API_ERROR",
		fmt.Sprintf("Request to URL %s failed with response code: %s", url, status)).
		WithMetadata("url", url).
		WithMetadata("status", status)
}

// NewGeocodeError creates an error for a location the geocoder could not
// resolve to coordinates.
func NewGeocodeError(location string) *AppError {
	return NewAppError(ErrorTypeAPI, "GEOCODE_FAILED",
		fmt.Sprintf("Lat/Lng for location '%s' can't be determined", location)).
		WithMetadata("location", location)
}

// NewAttributeUnavailableError creates an error for a detail-only attribute
// read on a place that has not been promoted to its detailed state.
func NewAttributeUnavailableError(attribute string) *AppError {
	return NewAppError(ErrorTypeAttributeUnavailable, "ATTRIBUTE_UNAVAILABLE",
		fmt.Sprintf("The attribute '%s' is only available after an explicit call to GetDetails()", attribute)).
		WithMetadata("attribute", attribute)
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorTypeInternal, "INTERNAL_ERROR", message, cause)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetErrorType returns the error type if it's an AppError
func GetErrorType(err error) (ErrorType, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type, true
	}
	return "", false
}
