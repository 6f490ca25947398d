package config

import "time"

// BrowserConfig defines configuration for the headless browser session
type BrowserConfig struct {
	ChromePath           string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty" validate:"omitempty,fileexists"`
	UserDataDir          string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	Stealth              bool   `json:"stealth" yaml:"stealth"`
	PageReadyTimeoutSecs int    `json:"page_ready_timeout_seconds,omitempty" yaml:"page_ready_timeout_seconds,omitempty" validate:"min=1"`
	ReadySelector        string `json:"ready_selector,omitempty" yaml:"ready_selector,omitempty" validate:"required"`
	SettleMillis         int    `json:"settle_millis" yaml:"settle_millis" validate:"min=0"`
	WindowWidth          int    `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"min=1"`
	WindowHeight         int    `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"min=1"`
	DisableImages        bool   `json:"disable_images" yaml:"disable_images"`
}

// NewDefaultBrowserConfig creates default browser configuration
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Stealth:              true,
		PageReadyTimeoutSecs: DefaultPageReadyTimeoutSecs,
		ReadySelector:        DefaultReadySelector,
		SettleMillis:         DefaultSettleMillis,
		WindowWidth:          DefaultWindowWidth,
		WindowHeight:         DefaultWindowHeight,
		DisableImages:        false,
	}
}

// PageReadyTimeout returns the bounded page-ready wait
func (bc BrowserConfig) PageReadyTimeout() time.Duration {
	return time.Duration(bc.PageReadyTimeoutSecs) * time.Second
}

// SettleDelay returns the fixed wait for client-side rendering
func (bc BrowserConfig) SettleDelay() time.Duration {
	return time.Duration(bc.SettleMillis) * time.Millisecond
}
