package config

import "time"

// NotificationConfig defines how a detection is announced
type NotificationConfig struct {
	BeepCount          int      `json:"beep_count" yaml:"beep_count" validate:"min=0"`
	BeepIntervalMillis int      `json:"beep_interval_millis" yaml:"beep_interval_millis" validate:"min=0"`
	OpenBrowser        bool     `json:"open_browser" yaml:"open_browser"`
	DiscordWebhookURL  string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	MentionRoles       []string `json:"mention_roles,omitempty" yaml:"mention_roles,omitempty"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		BeepCount:          DefaultBeepCount,
		BeepIntervalMillis: DefaultBeepIntervalMillis,
		OpenBrowser:        true,
	}
}

// BeepInterval returns the pause between beeps
func (nc NotificationConfig) BeepInterval() time.Duration {
	return time.Duration(nc.BeepIntervalMillis) * time.Millisecond
}
