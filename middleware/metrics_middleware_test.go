package middleware

import (
	"context"
	"runtime"
	"testing"

	"kidspace/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func collected(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric, 1024)
	c.Collect(ch)
	close(ch)
	return len(ch)
}

func TestCollectHostMetrics(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("host gauges are read from /proc")
	}

	// disk partitions may be hidden inside a container, cpu and load are not
	_ = CollectHostMetrics(context.Background())
	assert.NotZero(t, collected(metrics.SystemCPUUsage))
	assert.Equal(t, 3, collected(metrics.SystemLoadAverage))
}
