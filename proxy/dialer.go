package proxy

import (
	"context"
	"net"
)

// Dialer connects to an upstream server.
type Dialer interface {
	// Dial connects to the upstream server at address, a literal "ip:port".
	Dial(ctx context.Context, address string) (net.Conn, error)
}

// BasicDialer is the default Dialer implementation.
type BasicDialer struct {
	Dialer *net.Dialer
}

// Dial connects to the upstream server at address.
func (dialer *BasicDialer) Dial(
	ctx context.Context,
	address string,
) (net.Conn, error) {
	actual := dialer.Dialer
	if actual == nil {
		actual = &net.Dialer{}
	}

	return actual.DialContext(ctx, "tcp", address)
}
