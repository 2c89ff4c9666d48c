package escrow

import "time"

// MetricsCollector records upstream fetches and built views.
type MetricsCollector interface {
	RecordFetchDuration(source string, duration time.Duration)
	RecordFetchError(source string)
	RecordRowsBuilt(view string, count int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordFetchDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordFetchError(string)                   {}
func (n *NoopMetricsCollector) RecordRowsBuilt(string, int)               {}
