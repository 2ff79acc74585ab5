package metrics

import (
	"testing"
	"time"
)

func TestRTTWindowQuantiles(t *testing.T) {
	w := newRTTWindow(30 * time.Second)
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 9; i++ {
		w.Add(time.Duration(i)*time.Millisecond, now)
	}

	p50, max := w.Quantiles(now)
	if max != 9*time.Millisecond {
		t.Errorf("max = %v, want 9ms", max)
	}
	// T-Digest is approximate; the median of 1..9ms must land near 5ms.
	if p50 < 4*time.Millisecond || p50 > 6*time.Millisecond {
		t.Errorf("p50 = %v, want ~5ms", p50)
	}
}

func TestRTTWindowEmpty(t *testing.T) {
	w := newRTTWindow(time.Second)
	if p50, max := w.Quantiles(time.Now()); p50 != 0 || max != 0 {
		t.Errorf("empty window: p50=%v max=%v, want zeros", p50, max)
	}
}

func TestRTTWindowExpiry(t *testing.T) {
	w := newRTTWindow(10 * time.Second)
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	w.Add(100*time.Millisecond, base) // will expire
	w.Add(2*time.Millisecond, base.Add(15*time.Second))

	p50, max := w.Quantiles(base.Add(15 * time.Second))
	if max != 2*time.Millisecond {
		t.Errorf("max = %v, want 2ms after old sample expired", max)
	}
	if p50 != 2*time.Millisecond {
		t.Errorf("p50 = %v, want 2ms", p50)
	}
}

func TestRTTWindowDefaultSize(t *testing.T) {
	w := newRTTWindow(0)
	if w.window != defaultRTTWindow {
		t.Errorf("window = %v, want default %v", w.window, defaultRTTWindow)
	}
}
