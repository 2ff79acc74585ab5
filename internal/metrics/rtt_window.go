package metrics

import (
	"sync"
	"time"

	"github.com/influxdata/tdigest"
)

// rttSample is one observed round trip.
type rttSample struct {
	at    time.Time
	value float64 // seconds
}

// rttWindow keeps round-trip samples over a rolling window and answers
// quantile queries from a T-Digest. The digest is rebuilt only when
// samples actually expire.
type rttWindow struct {
	mu      sync.Mutex
	window  time.Duration
	samples []rttSample
	digest  *tdigest.TDigest
	max     float64
}

// defaultRTTWindow is used when the caller passes a non-positive window.
const defaultRTTWindow = 30 * time.Second

func newRTTWindow(window time.Duration) *rttWindow {
	if window <= 0 {
		window = defaultRTTWindow
	}
	return &rttWindow{
		window: window,
		digest: tdigest.NewWithCompression(100),
	}
}

// Add records one round trip observed at now.
func (w *rttWindow) Add(d time.Duration, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.expire(now)
	value := d.Seconds()
	w.samples = append(w.samples, rttSample{at: now, value: value})
	w.digest.Add(value, 1)
	if value > w.max {
		w.max = value
	}
}

// Quantiles returns the window's P50 and max as of now. Zero durations are
// returned for an empty window.
func (w *rttWindow) Quantiles(now time.Time) (p50, max time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.expire(now)
	if len(w.samples) == 0 {
		return 0, 0
	}
	return secondsToDuration(w.digest.Quantile(0.5)), secondsToDuration(w.max)
}

// expire drops samples older than the window and rebuilds the digest and
// max only if something expired.
func (w *rttWindow) expire(now time.Time) {
	cutoff := now.Add(-w.window)

	valid := w.samples[:0]
	expired := 0
	for _, s := range w.samples {
		if s.at.After(cutoff) {
			valid = append(valid, s)
		} else {
			expired++
		}
	}
	w.samples = valid

	if expired > 0 {
		w.digest = tdigest.NewWithCompression(100)
		w.max = 0
		for _, s := range w.samples {
			w.digest.Add(s.value, 1)
			if s.value > w.max {
				w.max = s.value
			}
		}
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
