package typenav

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_Basic(t *testing.T) {
	m := NewMetrics()

	if m.NavigationsTotal() != 0 {
		t.Errorf("NavigationsTotal() = %d; want 0", m.NavigationsTotal())
	}

	m.RecordNavigation(100*time.Millisecond, true)
	m.RecordNavigation(200*time.Millisecond, false)

	if m.NavigationsTotal() != 2 {
		t.Errorf("NavigationsTotal() = %d; want 2", m.NavigationsTotal())
	}
	if m.NavigationsValid() != 1 {
		t.Errorf("NavigationsValid() = %d; want 1", m.NavigationsValid())
	}
	if avg := m.AverageNavigationTime(); avg != 150*time.Millisecond {
		t.Errorf("AverageNavigationTime() = %v; want 150ms", avg)
	}
}

func TestMetrics_CacheHitRate(t *testing.T) {
	m := NewMetrics()

	if rate := m.CacheHitRate(); rate != 0 {
		t.Errorf("CacheHitRate() = %f; want 0", rate)
	}

	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()

	rate := m.CacheHitRate()
	expected := 2.0 / 3.0
	if rate < expected-0.01 || rate > expected+0.01 {
		t.Errorf("CacheHitRate() = %f; want ~%f", rate, expected)
	}
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordNavigation(10*time.Millisecond, true)
	m.RecordCacheMiss()
	m.RecordChoiceResolution()
	m.RecordProbeFailure()

	snap := m.Snapshot()
	if snap.NavigationsTotal != 1 {
		t.Errorf("NavigationsTotal = %d; want 1", snap.NavigationsTotal)
	}
	if snap.CacheMisses != 1 {
		t.Errorf("CacheMisses = %d; want 1", snap.CacheMisses)
	}
	if snap.ChoiceResolutions != 1 {
		t.Errorf("ChoiceResolutions = %d; want 1", snap.ChoiceResolutions)
	}
	if snap.ProbeFailures != 1 {
		t.Errorf("ProbeFailures = %d; want 1", snap.ProbeFailures)
	}
	if snap.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordNavigation(time.Millisecond, true)
	m.RecordCacheHit()
	m.Reset()

	if m.NavigationsTotal() != 0 {
		t.Errorf("NavigationsTotal() = %d after Reset; want 0", m.NavigationsTotal())
	}
	if m.CacheHitRate() != 0 {
		t.Errorf("CacheHitRate() = %f after Reset; want 0", m.CacheHitRate())
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordNavigation(time.Millisecond, j%2 == 0)
				m.RecordCacheHit()
			}
		}()
	}
	wg.Wait()

	if m.NavigationsTotal() != 1000 {
		t.Errorf("NavigationsTotal() = %d; want 1000", m.NavigationsTotal())
	}
	if m.NavigationsValid() != 500 {
		t.Errorf("NavigationsValid() = %d; want 500", m.NavigationsValid())
	}
}
