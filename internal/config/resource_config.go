package config

import "time"

// ResourceConfig defines the memory and CPU watchdog for long runs
type ResourceConfig struct {
	Enabled            bool    `json:"enabled" yaml:"enabled"`
	CheckIntervalSecs  int     `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"min=1"`
	MaxMemoryMB        int64   `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"min=0"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"gt=0,lte=1"`
	CPUThreshold       float64 `json:"cpu_threshold,omitempty" yaml:"cpu_threshold,omitempty" validate:"gt=0,lte=1"`
	// AutoShutdown stops monitoring, releasing the browser, once a threshold is exceeded
	AutoShutdown bool `json:"auto_shutdown" yaml:"auto_shutdown"`
}

// NewDefaultResourceConfig creates default resource watchdog configuration
func NewDefaultResourceConfig() ResourceConfig {
	return ResourceConfig{
		Enabled:            true,
		CheckIntervalSecs:  DefaultResourceCheckIntervalSecs,
		MaxMemoryMB:        DefaultMaxMemoryMB,
		SystemMemThreshold: DefaultSystemMemThreshold,
		CPUThreshold:       DefaultCPUThreshold,
		AutoShutdown:       false,
	}
}

// CheckInterval returns the sampling period as a duration
func (rc ResourceConfig) CheckInterval() time.Duration {
	return time.Duration(rc.CheckIntervalSecs) * time.Second
}
