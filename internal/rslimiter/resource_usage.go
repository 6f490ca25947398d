package rslimiter

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceUsage represents current resource usage. Headless Chrome runs as
// child processes, so system-wide memory is what grows over a long run.
type ResourceUsage struct {
	AllocMB              int64 // Heap allocated by this process
	SysMB                int64 // Memory obtained from the OS by the Go runtime
	Goroutines           int
	GCCount              int64
	SystemMemUsedMB      int64
	SystemMemTotalMB     int64
	SystemMemUsedPercent float64 // 0-100
	CPUUsagePercent      float64 // 0-100, since the previous sample
}

// Sampler reads current usage
type Sampler func() ResourceUsage

// GetResourceUsage returns current resource usage statistics.
// System figures are left at zero when the platform cannot report them.
func GetResourceUsage() ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		SysMB:      int64(m.Sys / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
		GCCount:    int64(m.NumGC),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemUsedMB = int64(vmStat.Used / 1024 / 1024)
		usage.SystemMemTotalMB = int64(vmStat.Total / 1024 / 1024)
		usage.SystemMemUsedPercent = vmStat.UsedPercent
	}

	// interval 0 compares against the previous call instead of blocking
	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		usage.CPUUsagePercent = cpuPercents[0]
	}

	return usage
}
