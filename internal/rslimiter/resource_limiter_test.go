package rslimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestResourceLimiter_New(t *testing.T) {
	config := DefaultResourceLimiterConfig()
	rl := NewResourceLimiter(config, zerolog.Nop())

	require.NotNil(t, rl)
	assert.Equal(t, config.MaxMemoryMB, rl.config.MaxMemoryMB)
	assert.Equal(t, config.CheckInterval, rl.config.CheckInterval)
	assert.False(t, rl.config.EnableAutoShutdown)
	assert.Equal(t, int64(float64(config.MaxMemoryMB)*0.8), rl.memoryThreshold)
}

func TestResourceLimiter_StartAndStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewResourceLimiter(DefaultResourceLimiterConfig(), zerolog.Nop())

	rl.Start(context.Background())
	assert.True(t, rl.IsRunning())
	rl.Start(context.Background())

	rl.Stop()
	assert.False(t, rl.IsRunning())
	rl.Stop()
}

func TestResourceLimiter_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	rl := NewResourceLimiter(DefaultResourceLimiterConfig(), zerolog.Nop())
	rl.Start(ctx)
	cancel()
	rl.Stop()
}

func TestResourceLimiter_ShutdownOnSystemMemory(t *testing.T) {
	defer goleak.VerifyNone(t)

	config := DefaultResourceLimiterConfig()
	config.EnableAutoShutdown = true
	config.CheckInterval = time.Millisecond
	config.SystemMemThreshold = 0.5

	var mu sync.Mutex
	var reasons []string
	done := make(chan struct{})

	rl := NewResourceLimiter(config, zerolog.Nop()).WithSampler(func() ResourceUsage {
		return ResourceUsage{SystemMemUsedPercent: 73.5, SystemMemUsedMB: 7350, SystemMemTotalMB: 10000}
	})
	rl.SetShutdownCallback(func(reason string) {
		mu.Lock()
		reasons = append(reasons, reason)
		mu.Unlock()
		close(done)
	})

	rl.Start(context.Background())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown callback was not called")
	}
	rl.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reasons, 1, "monitoring ends after triggering shutdown")
	assert.Contains(t, reasons[0], "system memory")
}

func TestResourceLimiter_CheckOnce(t *testing.T) {
	tests := []struct {
		name         string
		autoShutdown bool
		usage        ResourceUsage
		wantShutdown bool
	}{
		{name: "healthy", autoShutdown: true, usage: ResourceUsage{AllocMB: 10, SystemMemUsedPercent: 20, CPUUsagePercent: 5}},
		{name: "cpu exceeded", autoShutdown: true, usage: ResourceUsage{CPUUsagePercent: 99}, wantShutdown: true},
		{name: "heap exceeded", autoShutdown: true, usage: ResourceUsage{AllocMB: 10_000}, wantShutdown: true},
		{name: "exceeded but auto shutdown off", autoShutdown: false, usage: ResourceUsage{SystemMemUsedPercent: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultResourceLimiterConfig()
			config.EnableAutoShutdown = tt.autoShutdown
			called := false
			rl := NewResourceLimiter(config, zerolog.Nop()).WithSampler(func() ResourceUsage { return tt.usage })
			rl.SetShutdownCallback(func(string) { called = true })

			assert.Equal(t, tt.wantShutdown, rl.CheckOnce())
			assert.Equal(t, tt.wantShutdown, called)
		})
	}
}

func TestGetResourceUsage(t *testing.T) {
	usage := GetResourceUsage()
	assert.Positive(t, usage.Goroutines)
	assert.GreaterOrEqual(t, usage.SysMB, int64(0))
}
