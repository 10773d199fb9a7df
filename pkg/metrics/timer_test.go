package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewTimer tests that a fresh timer starts at roughly now.
func TestNewTimer(t *testing.T) {
	timer := NewTimer()

	if timer == nil {
		t.Fatal("NewTimer() returned nil")
	}

	if timer.start.IsZero() {
		t.Error("NewTimer() start time is zero")
	}

	if d := timer.Duration(); d < 0 || d > time.Second {
		t.Errorf("NewTimer().Duration() = %v, want a small non-negative duration", d)
	}
}

// TestTimerDuration tests that Duration grows with elapsed time.
func TestTimerDuration(t *testing.T) {
	timer := NewTimer()

	time.Sleep(50 * time.Millisecond)
	first := timer.Duration()
	if first < 50*time.Millisecond {
		t.Errorf("Timer.Duration() = %v, want >= 50ms", first)
	}

	time.Sleep(20 * time.Millisecond)
	second := timer.Duration()
	if second <= first {
		t.Errorf("Timer.Duration() not increasing: first=%v, second=%v", first, second)
	}
}

// TestTimerObserveDuration tests observation into a plain histogram.
func TestTimerObserveDuration(t *testing.T) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_timer_duration_seconds",
		Help:    "Test duration histogram",
		Buckets: prometheus.DefBuckets,
	})

	timer := NewTimer()
	time.Sleep(10 * time.Millisecond)
	timer.ObserveDuration(histogram)

	if timer.Duration() == 0 {
		t.Error("Timer.Duration() = 0 after sleep")
	}
}

// TestTimerObserveDurationVec tests observation into a labeled histogram.
func TestTimerObserveDurationVec(t *testing.T) {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "test_timer_duration_vec_seconds",
			Help:    "Test duration histogram vec",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	timer := NewTimer()
	timer.ObserveDurationVec(vec, "rebuild")
}

// TestTimersAreIndependent tests that two timers track their own start times.
func TestTimersAreIndependent(t *testing.T) {
	older := NewTimer()
	time.Sleep(30 * time.Millisecond)
	newer := NewTimer()
	time.Sleep(10 * time.Millisecond)

	if older.Duration() <= newer.Duration() {
		t.Errorf("older timer should report more elapsed time: older=%v, newer=%v",
			older.Duration(), newer.Duration())
	}
}
