package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRoomNotFound signals that the transport has no live room by that name.
// Host election treats it as "first participant"; everything else treats it
// as an upstream failure.
var ErrRoomNotFound = errors.New("room not found")

// ValidationError reports required request fields that were missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError from the missing field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConfigurationError enumerates absent configuration keys by name.
// Values are never included.
type ConfigurationError struct {
	Keys []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Keys, ", "))
}

// UpstreamError wraps a failed transport admin call. The upstream message is
// preserved for the response body; the operation names the call that failed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
