package journal

import (
	"context"
	"time"
)

// Entry is the record of a single transaction handled by the relay.
type Entry struct {
	ID         string    `json:"id"`
	Time       time.Time `json:"time"`
	RemoteAddr string    `json:"remote_addr"`
	Method     string    `json:"method,omitempty"`
	URL        string    `json:"url,omitempty"`
	Upstream   string    `json:"upstream,omitempty"`
	Local      bool      `json:"local,omitempty"`
	Status     int       `json:"status,omitempty"`
	BytesIn    int64     `json:"bytes_in"`
	BytesOut   int64     `json:"bytes_out"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

// Recorder stores journal entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
