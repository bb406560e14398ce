package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, including disallowed URLs.
	// Detected before any fetch; extraction never starts.
	ValidationError struct {
		Message string
	}

	// NetworkError indicates a transport or HTTP failure fetching the
	// primary document. Fatal to the whole extraction.
	NetworkError struct {
		Message string
	}

	// SinkError indicates a failure persisting the final artifact.
	SinkError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *NetworkError) Error() string    { return e.Message }
func (e *SinkError) Error() string       { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *NetworkError) StatusCode() int    { return http.StatusBadGateway }
func (e *SinkError) StatusCode() int       { return http.StatusBadGateway }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrNetwork    = errors.New("fetch failed")
	ErrSink       = errors.New("artifact sink failed")
)

// Is allows errors.Is() matching against the sentinels.
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *NetworkError) Is(target error) bool    { return target == ErrNetwork }
func (e *SinkError) Is(target error) bool       { return target == ErrSink }
