package httpclient

import (
	"testing"
	"time"

	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientBuilder(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(15 * time.Second).
		WithUserAgent("test-agent").
		WithFollowRedirects(false).
		WithInsecureSkipVerify(true).
		WithMaxRedirects(5).
		Build()

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, client.config.Timeout)
	assert.Equal(t, "test-agent", client.config.UserAgent)
	assert.False(t, client.config.FollowRedirects)
	assert.True(t, client.config.InsecureSkipVerify)
	assert.Equal(t, 5, client.config.MaxRedirects)
}

func TestHTTPClientBuilder_FromConfig(t *testing.T) {
	cfg := config.NewDefaultHTTPConfig()
	cfg.TimeoutSecs = 7
	cfg.UserAgent = "ua-from-config"
	cfg.EnableHTTP2 = false
	cfg.MaxContentBytes = 0

	client, err := NewHTTPClientBuilder(zerolog.Nop()).FromConfig(cfg).Build()
	require.NoError(t, err)

	assert.Equal(t, 7*time.Second, client.config.Timeout)
	assert.Equal(t, "ua-from-config", client.config.UserAgent)
	assert.False(t, client.config.EnableHTTP2)
	assert.Zero(t, client.config.MaxContentSize, "0 disables the body cap")
	// browser-like defaults survive
	assert.NotEmpty(t, client.config.CustomHeaders["Accept-Language"])
}

func TestHTTPClientBuilder_InvalidProxy(t *testing.T) {
	cfg := config.NewDefaultHTTPConfig()
	cfg.Proxy = "://bad"

	_, err := NewHTTPClientBuilder(zerolog.Nop()).FromConfig(cfg).Build()
	assert.Error(t, err)
}
