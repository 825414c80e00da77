package proxyprotocol

import "net"

// Listener wraps a net.Listener so that accepted connections may begin with a
// PROXY protocol header.
type Listener struct {
	net.Listener
}

// NewListener returns a listener that accepts PROXY protocol connections, as
// well as plain ones, from l.
func NewListener(l net.Listener) net.Listener {
	return &Listener{l}
}

// Accept waits for and returns the next connection.
func (l *Listener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return NewConn(conn), nil
}
