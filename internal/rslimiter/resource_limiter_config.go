package rslimiter

import (
	"time"

	"github.com/aleister1102/tixwatch/internal/config"
)

// ResourceLimiterConfig holds the watchdog thresholds
type ResourceLimiterConfig struct {
	MaxMemoryMB        int64         // Application heap limit in MB
	MemoryThreshold    float64       // Fraction of MaxMemoryMB that triggers a warning
	CheckInterval      time.Duration // How often to sample
	SystemMemThreshold float64       // Fraction of system memory that counts as exceeded
	CPUThreshold       float64       // Fraction of CPU that counts as exceeded
	EnableAutoShutdown bool          // Stop monitoring when a threshold is exceeded
}

// DefaultResourceLimiterConfig returns default configuration
func DefaultResourceLimiterConfig() ResourceLimiterConfig {
	return FromConfig(config.NewDefaultResourceConfig())
}

// FromConfig maps the resource section of the application config
func FromConfig(cfg config.ResourceConfig) ResourceLimiterConfig {
	return ResourceLimiterConfig{
		MaxMemoryMB:        cfg.MaxMemoryMB,
		MemoryThreshold:    0.8,
		CheckInterval:      cfg.CheckInterval(),
		SystemMemThreshold: cfg.SystemMemThreshold,
		CPUThreshold:       cfg.CPUThreshold,
		EnableAutoShutdown: cfg.AutoShutdown,
	}
}
