// Package apperr carries the application-wide error taxonomy: every
// failure surfaced to a caller is classified by Kind, and each kind
// maps to a human-readable description, a recovery suggestion, and a
// retryable flag.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	// Network class.
	KindInvalidURL   Kind = "NETWORK_INVALID_URL"
	KindNoConnection Kind = "NETWORK_NO_CONNECTION"
	KindTimeout      Kind = "NETWORK_TIMEOUT"
	KindCancelled    Kind = "NETWORK_CANCELLED"
	KindServerError  Kind = "NETWORK_SERVER_ERROR"
	KindNoData       Kind = "NETWORK_NO_DATA"
	KindDecoding     Kind = "NETWORK_DECODING_FAILED"
	KindUnknown      Kind = "UNKNOWN"

	// Storage class.
	KindDatabase   Kind = "STORAGE_DATABASE"
	KindFileSystem Kind = "STORAGE_FILESYSTEM"

	// Domain class.
	KindMaxCountriesReached Kind = "MAX_COUNTRIES_REACHED"
	KindCountryAlreadyAdded Kind = "COUNTRY_ALREADY_ADDED"
	KindInvalidCountryCode  Kind = "INVALID_COUNTRY_CODE"
	KindDataNotFound        Kind = "DATA_NOT_FOUND"

	// Location class, surfaced untouched from the location collaborator.
	KindLocationDenied      Kind = "LOCATION_PERMISSION_DENIED"
	KindLocationUnavailable Kind = "LOCATION_UNAVAILABLE"
)

// Error is a classified application error. StatusCode is only set for
// server errors and carries the upstream HTTP status.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Description())
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is match on Kind so callers can compare against
// sentinel *Error values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an error of the given kind with an optional cause.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ServerError builds a network server error carrying the upstream status.
func ServerError(statusCode int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("server error (%d)", statusCode)
	}
	return &Error{Kind: KindServerError, Message: message, StatusCode: statusCode}
}

// Wrap attaches a kind to an existing error, preserving it as the cause.
func Wrap(kind Kind, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: cause.Error(), Cause: cause}
}

// KindOf returns the kind of err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsRetryable reports whether the error class is eligible for
// caller-driven retry. Decoding failures and cancellations are not:
// retrying them cannot change the outcome.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindNoConnection, KindTimeout, KindServerError, KindNoData, KindUnknown:
		return true
	default:
		return false
	}
}

// Description returns a non-empty user-facing message for the error.
func (e *Error) Description() string {
	switch e.Kind {
	case KindInvalidURL:
		return "Invalid request URL."
	case KindNoConnection:
		return "No internet connection. Please check your network settings."
	case KindTimeout:
		return "The request timed out. Please try again."
	case KindCancelled:
		return "The request was cancelled."
	case KindServerError:
		if e.Message != "" {
			return e.Message
		}
		return fmt.Sprintf("Server error (%d).", e.StatusCode)
	case KindNoData:
		return "No data received from server."
	case KindDecoding:
		return "Failed to process server response."
	case KindDatabase:
		return "Local database error."
	case KindFileSystem:
		return "Local file system error."
	case KindMaxCountriesReached:
		return "You can only add up to 5 countries to your list."
	case KindCountryAlreadyAdded:
		return "This country is already in your list."
	case KindInvalidCountryCode:
		return "Invalid country code provided."
	case KindDataNotFound:
		return "Requested data not found."
	case KindLocationDenied:
		return "Location permission denied. Using default country."
	case KindLocationUnavailable:
		return "Current location is unavailable."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "Something went wrong. Please try again."
	}
}

// RecoverySuggestion returns an actionable hint for the error, or an
// empty string when none applies.
func (e *Error) RecoverySuggestion() string {
	switch e.Kind {
	case KindNoConnection, KindTimeout, KindServerError, KindNoData:
		return "Please check your internet connection and try again."
	case KindMaxCountriesReached:
		return "Remove a country from your list to add a new one."
	case KindCountryAlreadyAdded:
		return "Choose a different country to add."
	case KindLocationDenied:
		return "Enable location services to use this feature."
	default:
		return ""
	}
}
