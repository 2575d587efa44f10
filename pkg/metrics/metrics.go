// Package metrics provides Prometheus instrumentation for pool allocators
// and workload runs.
//
// # Overview
//
// The metrics package provides:
//   - ArenaCollector, a pool.Observer that records allocator events
//   - Timer for measuring workload durations
//   - Text exposition of everything gathered, for printing after a run
//
// # Basic Usage
//
//	collector := metrics.NewArenaCollector(prometheus.NewRegistry())
//	alloc := pool.New[int](10, pool.WithName("ints"), pool.WithObserver(collector))
//
//	timer := metrics.NewTimer("list")
//	fill(alloc)
//	collector.ObserveRun(timer.Name(), timer.Stop())
//
//	_ = collector.WriteText(os.Stderr)
//
// Each collector registers its metrics on the registry it is given, so
// tests and repeated runs never collide on the default registerer.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "arena"

// ArenaCollector records pool allocator lifecycle events as Prometheus
// metrics. It implements pool.Observer.
type ArenaCollector struct {
	gatherer prometheus.Gatherer

	reservations  *prometheus.CounterVec   // Blocks reserved
	releases      *prometheus.CounterVec   // Generations fully released
	allocated     *prometheus.CounterVec   // Elements handed out
	deallocated   *prometheus.CounterVec   // Elements returned
	exhaustions   *prometheus.CounterVec   // Rejected requests
	used          *prometheus.GaugeVec     // Live elements
	reservedBytes *prometheus.GaugeVec     // Bytes held by the current block
	runDuration   *prometheus.HistogramVec // Workload section durations
}

// NewArenaCollector creates a collector whose metrics are registered on reg.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewArenaCollector(reg)
//	l := list.New(pool.New[uint64](10, pool.WithObserver(collector)))
func NewArenaCollector(reg *prometheus.Registry) *ArenaCollector {
	factory := promauto.With(reg)
	poolLabel := []string{"pool"}

	return &ArenaCollector{
		gatherer: reg,
		reservations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "reservations_total",
			Help:      "Number of backing blocks reserved",
		}, poolLabel),
		releases: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "releases_total",
			Help:      "Number of generations fully released",
		}, poolLabel),
		allocated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "allocated_elements_total",
			Help:      "Total elements handed out",
		}, poolLabel),
		deallocated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "deallocated_elements_total",
			Help:      "Total elements returned",
		}, poolLabel),
		exhaustions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "exhaustions_total",
			Help:      "Allocation requests rejected for exceeding capacity",
		}, poolLabel),
		used: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "used_elements",
			Help:      "Elements currently outstanding",
		}, poolLabel),
		reservedBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "reserved_bytes",
			Help:      "Bytes held by the current backing block",
		}, poolLabel),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "duration_nanoseconds",
			Help:      "Duration of a workload section in nanoseconds",
			Buckets: []float64{
				1000,  // 1μs
				10000, // 10μs
				1e5,   // 100μs
				1e6,   // 1ms
				1e7,   // 10ms
				1e8,   // 100ms
			},
		}, []string{"container"}),
	}
}

// OnReserve implements pool.Observer.
func (c *ArenaCollector) OnReserve(pool string, capacity uint, elemSize uintptr) {
	c.reservations.WithLabelValues(pool).Inc()
	c.reservedBytes.WithLabelValues(pool).Set(float64(capacity) * float64(elemSize))
}

// OnRelease implements pool.Observer.
func (c *ArenaCollector) OnRelease(pool string, _ uint64) {
	c.releases.WithLabelValues(pool).Inc()
	c.reservedBytes.WithLabelValues(pool).Set(0)
}

// OnAllocate implements pool.Observer.
func (c *ArenaCollector) OnAllocate(pool string, n, used uint) {
	c.allocated.WithLabelValues(pool).Add(float64(n))
	c.used.WithLabelValues(pool).Set(float64(used))
}

// OnDeallocate implements pool.Observer.
func (c *ArenaCollector) OnDeallocate(pool string, n, used uint) {
	c.deallocated.WithLabelValues(pool).Add(float64(n))
	c.used.WithLabelValues(pool).Set(float64(used))
}

// OnExhausted implements pool.Observer.
func (c *ArenaCollector) OnExhausted(pool string, _, _ uint) {
	c.exhaustions.WithLabelValues(pool).Inc()
}

// ObserveRun records how long a workload section took.
func (c *ArenaCollector) ObserveRun(container string, d time.Duration) {
	c.runDuration.WithLabelValues(container).Observe(float64(d.Nanoseconds()))
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (c *ArenaCollector) WriteText(w io.Writer) error {
	families, err := c.gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the name the timer was created with.
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It may be called
// repeatedly.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
