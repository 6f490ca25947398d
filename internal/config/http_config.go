package config

import "time"

// HTTPConfig defines the static fetcher's HTTP client settings
type HTTPConfig struct {
	TimeoutSecs        int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"min=1"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" validate:"required"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool   `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	// MaxContentBytes caps the page body read by the static fetcher, 0 for no limit
	MaxContentBytes int `json:"max_content_bytes" yaml:"max_content_bytes" validate:"min=0"`
}

// NewDefaultHTTPConfig creates default HTTP configuration
func NewDefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		TimeoutSecs:        DefaultHTTPTimeoutSecs,
		UserAgent:          DefaultUserAgent,
		InsecureSkipVerify: false,
		EnableHTTP2:        true,
		MaxContentBytes:    DefaultMaxContentBytes,
	}
}

// Timeout returns the request timeout as a duration
func (hc HTTPConfig) Timeout() time.Duration {
	return time.Duration(hc.TimeoutSecs) * time.Second
}
