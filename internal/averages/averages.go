// Package averages reads the historical activity-average store.
//
// The store is a tree of tiny "bucket files", each holding a single integer
// as text:
//
//	<root>/hourly-average/0 .. 23   per-hour counters
//	<root>/hourly-average/24        interaction count
//	<root>/weekly-average/<d>/0..24 same layout per day, d = 0 (Sun) .. 6 (Sat)
//
// A missing or unreadable bucket file is the expected steady state before
// the platform has accumulated history, so it is never an error: the slot
// reads as zero.
package averages

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Days are the weekly subdirectory names in index order (0 = Sun).
var Days = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const (
	hourlyDir = "hourly-average"
	weeklyDir = "weekly-average"

	// hourBuckets is the number of per-hour counters; the bucket file at
	// index hourBuckets holds the interaction count.
	hourBuckets = 24
)

// HourlyAverage is one day-shaped set of counters.
type HourlyAverage struct {
	Averages     []int `json:"averages"`
	Interactions int   `json:"interactions"`
}

// DayActivity mirrors HourlyAverage for one named weekday.
type DayActivity struct {
	Hours        []int `json:"hours"`
	Interactions int   `json:"interactions"`
}

// WeeklyAverage holds one weekday's activity keyed by day name.
type WeeklyAverage map[string]DayActivity

// Recorder receives read outcomes for instrumentation. Implemented by
// metrics.Collector; nil disables recording.
type Recorder interface {
	RecordBucketRead(missing bool)
}

// Reader reads bucket files under a configured stats root.
type Reader struct {
	root     string
	logger   *slog.Logger
	recorder Recorder
}

// NewReader creates a Reader rooted at statsRoot. logger and recorder may
// be nil.
func NewReader(statsRoot string, logger *slog.Logger, recorder Recorder) *Reader {
	return &Reader{
		root:     statsRoot,
		logger:   logger,
		recorder: recorder,
	}
}

// Hourly reads the hourly-average buckets.
//
// The result is always a one-element slice whose Averages has exactly
// hourBuckets entries. Missing buckets read as zero.
func (r *Reader) Hourly() []HourlyAverage {
	dir := filepath.Join(r.root, hourlyDir)
	averages, interactions := r.readBucketDir(dir)
	return []HourlyAverage{{Averages: averages, Interactions: interactions}}
}

// Weekly reads the weekly-average buckets, one record per weekday in fixed
// Sun..Sat order. Each day is read independently; a failure in one day's
// files does not affect the others.
func (r *Reader) Weekly() []WeeklyAverage {
	results := make([]WeeklyAverage, 0, len(Days))
	for i, day := range Days {
		dir := filepath.Join(r.root, weeklyDir, strconv.Itoa(i))
		hours, interactions := r.readBucketDir(dir)
		results = append(results, WeeklyAverage{
			day: {Hours: hours, Interactions: interactions},
		})
	}
	return results
}

// readBucketDir reads bucket files 0..hourBuckets from dir. The first
// hourBuckets files fill the returned slice; the last one is the
// interaction count.
func (r *Reader) readBucketDir(dir string) (buckets []int, interactions int) {
	buckets = make([]int, 0, hourBuckets)
	for i := 0; i <= hourBuckets; i++ {
		value, ok := r.readBucket(filepath.Join(dir, strconv.Itoa(i)))
		if i < hourBuckets {
			buckets = append(buckets, value)
		} else if ok {
			interactions = value
		}
	}
	return buckets, interactions
}

// readBucket reads one bucket file. ok is false when the file is missing,
// unreadable, or not an integer; the value is then zero.
func (r *Reader) readBucket(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.miss(path, err)
		return 0, false
	}
	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		r.miss(path, err)
		return 0, false
	}
	if r.recorder != nil {
		r.recorder.RecordBucketRead(false)
	}
	return value, true
}

func (r *Reader) miss(path string, err error) {
	if r.recorder != nil {
		r.recorder.RecordBucketRead(true)
	}
	if r.logger != nil {
		r.logger.Debug("bucket_read_defaulted", "path", path, "error", err)
	}
}
