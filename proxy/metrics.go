package proxy

import "time"

// Metrics holds the measurements of one transaction.
type Metrics struct {
	// BytesIn is the number of bytes read from the upstream server, including
	// the status line and headers.
	BytesIn int64

	// BytesOut is the number of bytes written to the client.
	BytesOut int64

	StartedAt time.Time

	// FirstByte and LastByte are offsets from StartedAt. They are zero until
	// the response starts and finishes being written.
	FirstByte time.Duration
	LastByte  time.Duration
}

// Start the timer.
func (metrics *Metrics) Start() {
	metrics.StartedAt = time.Now()
}

// MarkFirstByte records that the response is about to be written.
func (metrics *Metrics) MarkFirstByte() {
	metrics.FirstByte = time.Since(metrics.StartedAt)
}

// MarkLastByte records that the response has been written.
func (metrics *Metrics) MarkLastByte() {
	metrics.LastByte = time.Since(metrics.StartedAt)
}

// Milliseconds returns d as a fractional number of milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
