package common

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across packages
var (
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrSessionClosed indicates the browser session was used after release
	ErrSessionClosed = errors.New("browser session closed")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ConfigError represents malformed or missing settings. It is fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Field != "" {
		msg = fmt.Sprintf("configuration error in field '%s'", e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidConfiguration
	}
	return e.Err
}

// NewConfigError creates a new configuration error
func NewConfigError(field, reason string, err error) *ConfigError {
	return &ConfigError{Field: field, Reason: reason, Err: err}
}

// FetchError represents a network, timeout or browser-session fault during a poll.
type FetchError struct {
	Op   string
	URL  string
	Mode string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s mode) failed during %s: %v", e.URL, e.Mode, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new fetch error
func NewFetchError(op, url, mode string, err error) *FetchError {
	return &FetchError{Op: op, URL: url, Mode: mode, Err: err}
}

// SessionInitError is returned when the headless browser cannot be started.
type SessionInitError struct {
	Op  string
	Err error
}

func (e *SessionInitError) Error() string {
	return fmt.Sprintf("browser session init failed during %s: %v", e.Op, e.Err)
}

func (e *SessionInitError) Unwrap() error {
	return e.Err
}

// NewSessionInitError creates a new session init error
func NewSessionInitError(op string, err error) *SessionInitError {
	return &SessionInitError{Op: op, Err: err}
}

// NotifyError represents a failed alert channel.
type NotifyError struct {
	Channel string
	Err     error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notification via %s failed: %v", e.Channel, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

// NewNotifyError creates a new notify error
func NewNotifyError(channel string, err error) *NotifyError {
	return &NotifyError{Channel: channel, Err: err}
}

// HTTPError represents HTTP-related errors
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *HTTPError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP %d error for '%s': %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP %d error: %s", e.StatusCode, e.Message)
}

// NewHTTPErrorWithURL creates a new HTTP error with URL context
func NewHTTPErrorWithURL(statusCode int, message, url string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		URL:        url,
	}
}

// GetRootCause returns the root cause of an error by unwrapping all wrapped errors
func GetRootCause(err error) error {
	for {
		wrapped := errors.Unwrap(err)
		if wrapped == nil {
			return err
		}
		err = wrapped
	}
}
