package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}

	assert.NoError(t, WrapError(nil, "nothing"))
	assert.NoError(t, WrapErrorf(nil, "nothing %d", 1))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("monitor.keyword", "must not be empty", nil)
	assert.Equal(t, "configuration error in field 'monitor.keyword': must not be empty", err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	cause := errors.New("yaml: line 3")
	wrapped := NewConfigError("", "failed to parse", cause)
	assert.Equal(t, "configuration error: failed to parse: yaml: line 3", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestFetchError(t *testing.T) {
	httpErr := NewHTTPErrorWithURL(http.StatusServiceUnavailable, "busy", "https://example.test")
	err := NewFetchError("GET", "https://example.test", "static", httpErr)

	assert.Contains(t, err.Error(), "https://example.test")
	assert.Contains(t, err.Error(), "static mode")
	assert.Contains(t, err.Error(), "HTTP 503")

	var target *HTTPError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, http.StatusServiceUnavailable, target.StatusCode)
	assert.Equal(t, httpErr, GetRootCause(err))
}

func TestSessionInitAndNotifyErrors(t *testing.T) {
	cause := errors.New("chrome not found")

	initErr := NewSessionInitError("launch", cause)
	assert.Equal(t, "browser session init failed during launch: chrome not found", initErr.Error())
	assert.ErrorIs(t, initErr, cause)

	notifyErr := NewNotifyError("opener", cause)
	assert.Equal(t, "notification via opener failed: chrome not found", notifyErr.Error())
	var target *NotifyError
	assert.True(t, errors.As(WrapError(notifyErr, "dispatch"), &target))
	assert.Equal(t, "opener", target.Channel)
}
