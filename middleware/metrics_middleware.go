package middleware

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"time"

	"kidspace/metrics"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
)

// MetricsMiddleware collects HTTP request metrics, labelled by route template
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.RequestInProgress.WithLabelValues(method, path).Inc()
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestCounter.WithLabelValues(status, method, path).Inc()
		metrics.RequestDuration.WithLabelValues(status, method, path).Observe(duration)
		metrics.RequestInProgress.WithLabelValues(method, path).Dec()
	}
}

// CollectSystemMetrics samples memory and goroutine gauges once
func CollectSystemMetrics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	metrics.MemoryStats.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	metrics.MemoryStats.WithLabelValues("sys").Set(float64(memStats.Sys))
	metrics.MemoryStats.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
	metrics.MemoryStats.WithLabelValues("heap_sys").Set(float64(memStats.HeapSys))
	metrics.MemoryStats.WithLabelValues("heap_idle").Set(float64(memStats.HeapIdle))
	metrics.MemoryStats.WithLabelValues("heap_inuse").Set(float64(memStats.HeapInuse))

	metrics.GoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// CollectHostMetrics samples CPU, disk and load average gauges once.
// Each part is collected even when another fails.
func CollectHostMetrics(ctx context.Context) error {
	var errs []error

	// interval 0 compares against the previous call
	if percents, err := cpu.PercentWithContext(ctx, 0, true); err != nil {
		errs = append(errs, err)
	} else {
		for i, p := range percents {
			metrics.SystemCPUUsage.WithLabelValues(strconv.Itoa(i)).Set(p)
		}
	}

	if partitions, err := disk.PartitionsWithContext(ctx, false); err != nil {
		errs = append(errs, err)
	} else {
		for _, part := range partitions {
			usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
			if err != nil {
				continue
			}
			metrics.SystemDiskUsage.WithLabelValues(part.Device, part.Mountpoint, "used").Set(float64(usage.Used))
			metrics.SystemDiskUsage.WithLabelValues(part.Device, part.Mountpoint, "free").Set(float64(usage.Free))
			metrics.SystemDiskUsage.WithLabelValues(part.Device, part.Mountpoint, "total").Set(float64(usage.Total))
		}
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		errs = append(errs, err)
	} else {
		metrics.SystemLoadAverage.WithLabelValues("1min").Set(avg.Load1)
		metrics.SystemLoadAverage.WithLabelValues("5min").Set(avg.Load5)
		metrics.SystemLoadAverage.WithLabelValues("15min").Set(avg.Load15)
	}

	return errors.Join(errs...)
}
