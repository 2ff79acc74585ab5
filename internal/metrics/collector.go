// Package metrics provides Prometheus metrics for hostsentry-stats.
//
// One Collector instruments all five stats operations: bucket reads, totals
// parses, stat-file parses, per-agent batches, and control-socket round
// trips. Components receive the Collector through the small Recorder
// interfaces they declare, so every package stays testable without a
// registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the stats-layer metrics and the round-trip latency window.
type Collector struct {
	bucketReads    *prometheus.CounterVec
	totalsParses   *prometheus.CounterVec
	totalsRecords  prometheus.Counter
	statFileParses *prometheus.CounterVec
	agentBatch     *prometheus.CounterVec
	socketTrips    *prometheus.CounterVec
	socketRTT      prometheus.Histogram

	rttWindow *rttWindow
	rttP50    prometheus.Gauge
	rttMax    prometheus.Gauge
}

// NewCollector creates a Collector registered on the default registry.
func NewCollector(windowSize time.Duration) *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer, windowSize)
}

// NewCollectorWithRegistry creates a Collector on a custom registry.
// Tests use this to avoid duplicate-registration panics.
func NewCollectorWithRegistry(registry prometheus.Registerer, windowSize time.Duration) *Collector {
	c := &Collector{
		bucketReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostsentry_stats_bucket_reads_total",
				Help: "Average-store bucket file reads by result",
			},
			[]string{"result"}, // present, missing
		),
		totalsParses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostsentry_stats_totals_parses_total",
				Help: "Totals log parses by result",
			},
			[]string{"result"}, // ok, malformed
		),
		totalsRecords: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hostsentry_stats_totals_records_total",
				Help: "Hour records produced by totals log parses",
			},
		),
		statFileParses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostsentry_stats_statfile_parses_total",
				Help: "Daemon stat-file parses by result",
			},
			[]string{"result"}, // ok, error
		),
		agentBatch: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostsentry_stats_agent_queries_total",
				Help: "Per-agent stats queries by result",
			},
			[]string{"result"}, // ok, failed
		),
		socketTrips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostsentry_stats_socket_roundtrips_total",
				Help: "Control-socket round trips by outcome",
			},
			[]string{"outcome"},
		),
		socketRTT: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hostsentry_stats_socket_roundtrip_seconds",
				Help:    "Control-socket round-trip time",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms .. ~4s
			},
		),
		rttWindow: newRTTWindow(windowSize),
		rttP50: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostsentry_stats_socket_roundtrip_p50_seconds",
				Help: "Median control-socket round trip over the rolling window",
			},
		),
		rttMax: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostsentry_stats_socket_roundtrip_max_seconds",
				Help: "Max control-socket round trip over the rolling window",
			},
		),
	}

	registry.MustRegister(
		c.bucketReads,
		c.totalsParses,
		c.totalsRecords,
		c.statFileParses,
		c.agentBatch,
		c.socketTrips,
		c.socketRTT,
		c.rttP50,
		c.rttMax,
	)

	return c
}

// RecordBucketRead counts one average-store bucket read.
func (c *Collector) RecordBucketRead(missing bool) {
	if missing {
		c.bucketReads.WithLabelValues("missing").Inc()
		return
	}
	c.bucketReads.WithLabelValues("present").Inc()
}

// RecordTotalsParse counts one totals log parse and its produced records.
func (c *Collector) RecordTotalsParse(failed bool, records int) {
	if failed {
		c.totalsParses.WithLabelValues("malformed").Inc()
	} else {
		c.totalsParses.WithLabelValues("ok").Inc()
	}
	c.totalsRecords.Add(float64(records))
}

// RecordStatFileParse counts one daemon stat-file parse.
func (c *Collector) RecordStatFileParse(ok bool) {
	if ok {
		c.statFileParses.WithLabelValues("ok").Inc()
		return
	}
	c.statFileParses.WithLabelValues("error").Inc()
}

// RecordAgentBatch counts the outcome split of one agent batch.
func (c *Collector) RecordAgentBatch(succeeded, failed int) {
	c.agentBatch.WithLabelValues("ok").Add(float64(succeeded))
	c.agentBatch.WithLabelValues("failed").Add(float64(failed))
}

// RecordSocketRoundTrip counts one control-socket round trip and feeds the
// latency window. Only completed trips (a reply arrived, even an error
// envelope) contribute latency samples.
func (c *Collector) RecordSocketRoundTrip(d time.Duration, outcome string) {
	c.socketTrips.WithLabelValues(outcome).Inc()
	if outcome == "connect_error" || outcome == "no_data" {
		return
	}
	c.socketRTT.Observe(d.Seconds())
	c.rttWindow.Add(d, time.Now())
	p50, max := c.rttWindow.Quantiles(time.Now())
	c.rttP50.Set(p50.Seconds())
	c.rttMax.Set(max.Seconds())
}

// RTTQuantiles returns the rolling-window round-trip P50 and max, for the
// dashboard.
func (c *Collector) RTTQuantiles() (p50, max time.Duration) {
	return c.rttWindow.Quantiles(time.Now())
}
