// Package rslimiter watches memory and CPU during a long monitoring run.
package rslimiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ResourceLimiter samples resource usage on a ticker and warns, or triggers
// the shutdown callback, when thresholds are crossed.
type ResourceLimiter struct {
	config           ResourceLimiterConfig
	logger           zerolog.Logger
	sampler          Sampler
	memoryThreshold  int64
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	isRunning        bool
	mu               sync.RWMutex
	shutdownCallback func(reason string)
}

// NewResourceLimiter creates a new resource limiter
func NewResourceLimiter(config ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 60 * time.Second
	}
	if config.MemoryThreshold == 0 {
		config.MemoryThreshold = 0.8
	}
	if config.SystemMemThreshold == 0 {
		config.SystemMemThreshold = 0.9
	}
	if config.CPUThreshold == 0 {
		config.CPUThreshold = 0.95
	}

	return &ResourceLimiter{
		config:          config,
		logger:          logger.With().Str("component", "ResourceLimiter").Logger(),
		sampler:         GetResourceUsage,
		memoryThreshold: int64(float64(config.MaxMemoryMB) * config.MemoryThreshold),
	}
}

// WithSampler replaces how usage is read
func (rl *ResourceLimiter) WithSampler(s Sampler) *ResourceLimiter {
	rl.sampler = s
	return rl
}

// SetShutdownCallback sets the function called once a threshold is exceeded
func (rl *ResourceLimiter) SetShutdownCallback(callback func(reason string)) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.shutdownCallback = callback
}

// Start begins monitoring until ctx is done or Stop is called
func (rl *ResourceLimiter) Start(ctx context.Context) {
	rl.mu.Lock()
	if rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = true
	ctx, rl.cancel = context.WithCancel(ctx)
	rl.mu.Unlock()

	rl.wg.Add(1)
	go rl.monitorResources(ctx)

	rl.logger.Info().
		Int64("max_memory_mb", rl.config.MaxMemoryMB).
		Dur("check_interval", rl.config.CheckInterval).
		Float64("system_mem_threshold", rl.config.SystemMemThreshold).
		Float64("cpu_threshold", rl.config.CPUThreshold).
		Bool("auto_shutdown_enabled", rl.config.EnableAutoShutdown).
		Msg("Resource limiter started")
}

// Stop stops the monitor and waits for its goroutine
func (rl *ResourceLimiter) Stop() {
	rl.mu.Lock()
	if !rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = false
	cancel := rl.cancel
	rl.mu.Unlock()

	cancel()
	rl.wg.Wait()
	rl.logger.Info().Msg("Resource limiter stopped")
}

// IsRunning reports whether the monitor goroutine is active
func (rl *ResourceLimiter) IsRunning() bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return rl.isRunning
}

func (rl *ResourceLimiter) monitorResources(ctx context.Context) {
	defer rl.wg.Done()

	ticker := time.NewTicker(rl.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if rl.CheckOnce() {
				return
			}
		}
	}
}

// CheckOnce samples usage, logs it and returns true if shutdown was triggered
func (rl *ResourceLimiter) CheckOnce() bool {
	usage := rl.sampler()

	rl.logWarnings(usage)

	if rl.config.EnableAutoShutdown {
		if exceeded, reason := rl.checkShutdownConditions(usage); exceeded {
			rl.logger.Error().
				Str("reason", reason).
				Int64("alloc_mb", usage.AllocMB).
				Float64("system_mem_percent", usage.SystemMemUsedPercent).
				Float64("cpu_percent", usage.CPUUsagePercent).
				Msg("Resource limits exceeded, triggering graceful shutdown")
			rl.triggerGracefulShutdown(reason)
			return true
		}
	}

	rl.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mb", usage.SysMB).
		Int("goroutines", usage.Goroutines).
		Int64("gc_count", usage.GCCount).
		Int64("system_mem_used_mb", usage.SystemMemUsedMB).
		Float64("system_mem_percent", usage.SystemMemUsedPercent).
		Float64("cpu_percent", usage.CPUUsagePercent).
		Msg("Current resource usage")
	return false
}

func (rl *ResourceLimiter) logWarnings(usage ResourceUsage) {
	if rl.memoryThreshold > 0 && usage.AllocMB > rl.memoryThreshold {
		rl.logger.Warn().
			Int64("current_mb", usage.AllocMB).
			Int64("threshold_mb", rl.memoryThreshold).
			Int64("limit_mb", rl.config.MaxMemoryMB).
			Msg("Memory usage approaching limit")
	}
	if usage.SystemMemUsedPercent/100 > rl.config.SystemMemThreshold {
		rl.logger.Warn().
			Float64("used_percent", usage.SystemMemUsedPercent).
			Int64("used_mb", usage.SystemMemUsedMB).
			Int64("total_mb", usage.SystemMemTotalMB).
			Msg("System memory usage exceeded threshold")
	}
}

// checkShutdownConditions returns the first exceeded limit
func (rl *ResourceLimiter) checkShutdownConditions(usage ResourceUsage) (bool, string) {
	switch {
	case usage.SystemMemUsedPercent/100 > rl.config.SystemMemThreshold:
		return true, fmt.Sprintf("system memory %.1f%% above %.0f%%", usage.SystemMemUsedPercent, rl.config.SystemMemThreshold*100)
	case usage.CPUUsagePercent/100 > rl.config.CPUThreshold:
		return true, fmt.Sprintf("CPU %.1f%% above %.0f%%", usage.CPUUsagePercent, rl.config.CPUThreshold*100)
	case rl.config.MaxMemoryMB > 0 && usage.AllocMB > rl.config.MaxMemoryMB:
		return true, fmt.Sprintf("application memory %dMB above %dMB", usage.AllocMB, rl.config.MaxMemoryMB)
	}
	return false, ""
}

func (rl *ResourceLimiter) triggerGracefulShutdown(reason string) {
	rl.mu.RLock()
	callback := rl.shutdownCallback
	rl.mu.RUnlock()

	if callback != nil {
		callback(reason)
	} else {
		rl.logger.Warn().Msg("No shutdown callback set, cannot trigger graceful shutdown")
	}
}
