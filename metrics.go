package typenav

import (
	"sync/atomic"
	"time"
)

// Metrics tracks navigation performance using lock-free atomic counters.
// All methods are safe for concurrent use.
type Metrics struct {
	navigationsTotal atomic.Uint64
	navigationsValid atomic.Uint64

	// Timing (stored as nanoseconds)
	navigationTimeTotal atomic.Uint64

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64

	choiceResolutions atomic.Uint64
	probeFailures     atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordNavigation records a completed path navigation.
func (m *Metrics) RecordNavigation(duration time.Duration, valid bool) {
	m.navigationsTotal.Add(1)
	if valid {
		m.navigationsValid.Add(1)
	}
	m.navigationTimeTotal.Add(uint64(duration.Nanoseconds())) //nolint:gosec // durations are non-negative
}

// RecordCacheHit records a type-info cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a type-info cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// RecordChoiceResolution records a choice-type resolution.
func (m *Metrics) RecordChoiceResolution() {
	m.choiceResolutions.Add(1)
}

// RecordProbeFailure records a failed provider health probe.
func (m *Metrics) RecordProbeFailure() {
	m.probeFailures.Add(1)
}

// NavigationsTotal returns the total number of navigations performed.
func (m *Metrics) NavigationsTotal() uint64 {
	return m.navigationsTotal.Load()
}

// NavigationsValid returns the number of navigations that fully resolved.
func (m *Metrics) NavigationsValid() uint64 {
	return m.navigationsValid.Load()
}

// AverageNavigationTime returns the average navigation duration.
func (m *Metrics) AverageNavigationTime() time.Duration {
	total := m.navigationsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.navigationTimeTotal.Load() / total) //nolint:gosec // nanoseconds fit int64
}

// CacheHitRate returns the cache hit rate (0.0 to 1.0).
func (m *Metrics) CacheHitRate() float64 {
	hits := m.cacheHits.Load()
	total := hits + m.cacheMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// ChoiceResolutions returns the total choice-type resolutions.
func (m *Metrics) ChoiceResolutions() uint64 {
	return m.choiceResolutions.Load()
}

// ProbeFailures returns the total failed health probes.
func (m *Metrics) ProbeFailures() uint64 {
	return m.probeFailures.Load()
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	Timestamp time.Time `json:"timestamp"`

	NavigationsTotal uint64 `json:"navigations_total"`
	NavigationsValid uint64 `json:"navigations_valid"`

	AvgNavigationTimeNs uint64 `json:"avg_navigation_time_ns"`

	CacheHits    uint64  `json:"cache_hits"`
	CacheMisses  uint64  `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`

	ChoiceResolutions uint64 `json:"choice_resolutions"`
	ProbeFailures     uint64 `json:"probe_failures"`
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	total := m.navigationsTotal.Load()

	var avgNs uint64
	if total > 0 {
		avgNs = m.navigationTimeTotal.Load() / total
	}

	return MetricsSnapshot{
		Timestamp:           time.Now(),
		NavigationsTotal:    total,
		NavigationsValid:    m.navigationsValid.Load(),
		AvgNavigationTimeNs: avgNs,
		CacheHits:           m.cacheHits.Load(),
		CacheMisses:         m.cacheMisses.Load(),
		CacheHitRate:        m.CacheHitRate(),
		ChoiceResolutions:   m.choiceResolutions.Load(),
		ProbeFailures:       m.probeFailures.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.navigationsTotal.Store(0)
	m.navigationsValid.Store(0)
	m.navigationTimeTotal.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.choiceResolutions.Store(0)
	m.probeFailures.Store(0)
}
