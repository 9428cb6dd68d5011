package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a Stats value as Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry
	stats    *Stats
}

// NewCollector registers allocation metrics for stats under namespace.
// An empty namespace defaults to "actl".
func NewCollector(namespace string, stats *Stats) *Collector {
	if namespace == "" {
		namespace = "actl"
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		stats:    stats,
	}

	counter := func(name, help string, value func(Snapshot) int64) prometheus.Collector {
		return prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "alloc",
				Name:      name,
				Help:      help,
			},
			func() float64 { return float64(value(c.stats.Snapshot())) },
		)
	}

	c.registry.MustRegister(
		counter("allocations_total", "Number of buffers handed out by providers.",
			func(s Snapshot) int64 { return s.Allocations }),
		counter("releases_total", "Number of buffers returned to providers.",
			func(s Snapshot) int64 { return s.Releases }),
		counter("bytes_allocated_total", "Bytes handed out by providers.",
			func(s Snapshot) int64 { return s.BytesAllocated }),
		counter("bytes_released_total", "Bytes returned to providers.",
			func(s Snapshot) int64 { return s.BytesReleased }),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "alloc",
				Name:      "bytes_live",
				Help:      "Bytes currently held by containers.",
			},
			func() float64 { return float64(c.stats.Snapshot().Live()) },
		),
	)

	return c
}

// Registry returns the registry holding the allocation metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Values gathers the current metric values keyed by fully qualified name.
func (c *Collector) Values() (map[string]float64, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	return values, nil
}
