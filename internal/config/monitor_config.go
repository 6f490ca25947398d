package config

import (
	"time"

	"github.com/aleister1102/tixwatch/internal/models"
)

// MonitorConfig defines the polled target and the timing policy
type MonitorConfig struct {
	TargetURL         string  `json:"target_url" yaml:"target_url" validate:"required,url"`
	BasePeriodSeconds int     `json:"base_period_seconds" yaml:"base_period_seconds" validate:"min=1"`
	Keyword           string  `json:"keyword" yaml:"keyword" validate:"required"`
	DetectionMode     string  `json:"detection_mode" yaml:"detection_mode" validate:"required,detectionmode"`
	MinFactor         float64 `json:"min_factor" yaml:"min_factor" validate:"gt=0"`
	MaxFactor         float64 `json:"max_factor" yaml:"max_factor" validate:"gtefield=MinFactor"`
	// MaxAttempts stops the loop after that many cycles, 0 means run until stopped
	MaxAttempts int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"min=0"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		TargetURL:         DefaultTargetURL,
		BasePeriodSeconds: DefaultBasePeriodSeconds,
		Keyword:           DefaultKeyword,
		DetectionMode:     DefaultDetectionMode,
		MinFactor:         DefaultMinFactor,
		MaxFactor:         DefaultMaxFactor,
	}
}

// Mode returns the parsed detection mode, falling back to scripted for unknown values.
// ValidateConfig rejects unknown values before the loop ever sees them.
func (mc MonitorConfig) Mode() models.DetectionMode {
	mode, err := models.ParseDetectionMode(mc.DetectionMode)
	if err != nil {
		return models.ModeScripted
	}
	return mode
}

// BasePeriod returns the base polling period as a duration
func (mc MonitorConfig) BasePeriod() time.Duration {
	return time.Duration(mc.BasePeriodSeconds) * time.Second
}
