package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks analysis call counters for the whole process.
type Metrics struct {
	analyzeCalls      int64
	analyzeFailures   int64
	analyzeLatency    int64 // total latency in nanoseconds
	violationsEmitted int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot.
func GetMetrics() Metrics {
	return Metrics{
		analyzeCalls:      atomic.LoadInt64(&globalMetrics.analyzeCalls),
		analyzeFailures:   atomic.LoadInt64(&globalMetrics.analyzeFailures),
		analyzeLatency:    atomic.LoadInt64(&globalMetrics.analyzeLatency),
		violationsEmitted: atomic.LoadInt64(&globalMetrics.violationsEmitted),
	}
}

// ResetMetrics resets all metrics (useful for testing).
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.analyzeCalls, 0)
	atomic.StoreInt64(&globalMetrics.analyzeFailures, 0)
	atomic.StoreInt64(&globalMetrics.analyzeLatency, 0)
	atomic.StoreInt64(&globalMetrics.violationsEmitted, 0)
}

func recordAnalyze(duration time.Duration, violations int, err error) {
	atomic.AddInt64(&globalMetrics.analyzeCalls, 1)
	atomic.AddInt64(&globalMetrics.analyzeLatency, duration.Nanoseconds())
	atomic.AddInt64(&globalMetrics.violationsEmitted, int64(violations))
	if err != nil {
		atomic.AddInt64(&globalMetrics.analyzeFailures, 1)
	}
}

// AnalyzeCalls returns how many analysis runs the process has served.
func (m Metrics) AnalyzeCalls() int64 { return m.analyzeCalls }

// AnalyzeFailures returns how many runs were rejected as malformed.
func (m Metrics) AnalyzeFailures() int64 { return m.analyzeFailures }

// ViolationsEmitted returns the total violations across all runs.
func (m Metrics) ViolationsEmitted() int64 { return m.violationsEmitted }

// AverageAnalyzeLatency returns the average latency in milliseconds.
func (m Metrics) AverageAnalyzeLatency() float64 {
	if m.analyzeCalls == 0 {
		return 0
	}
	return float64(m.analyzeLatency) / float64(m.analyzeCalls) / 1e6
}
