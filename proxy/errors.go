package proxy

import "errors"

var (
	// ErrResolutionFailure indicates that the target host could not be
	// resolved to an IP address.
	ErrResolutionFailure = errors.New("resolution failure")

	// ErrConnectFailure indicates that no connection could be established to
	// the upstream server.
	ErrConnectFailure = errors.New("connect failure")

	// ErrWriteFailure indicates that the request could not be written to the
	// upstream server in full.
	ErrWriteFailure = errors.New("write failure")
)
