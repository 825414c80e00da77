package proxyprotocol

import (
	"bufio"
	"net"
	"sync"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
)

// Conn is a net.Conn that strips an optional PROXY protocol header from the
// start of the stream.
//
// The header is read on the first call to Read, LocalAddr, RemoteAddr or
// Header, so that accepting a connection never blocks on the client.
type Conn struct {
	conn   net.Conn
	reader *bufio.Reader

	once   sync.Once
	header *proxyproto.Header
	err    error
	local  net.Addr
	remote net.Addr
}

// NewConn returns a connection that parses PROXY protocol headers from the
// start of the stream.
func NewConn(nc net.Conn) *Conn {
	return &Conn{
		conn:   nc,
		reader: bufio.NewReader(nc),
	}
}

// Header returns the PROXY header sent by the client, or nil if the client did
// not send one.
func (c *Conn) Header() (*proxyproto.Header, error) {
	c.once.Do(c.init)
	return c.header, c.err
}

func (c *Conn) init() {
	header, err := proxyproto.Read(c.reader)
	switch err {
	case proxyproto.ErrNoProxyProtocol, proxyproto.ErrInvalidLength:
		// not a PROXY protocol connection, the stream is left untouched
	case nil:
		c.header = header
		if header.Command == proxyproto.PROXY {
			c.local = newProxyAddr(header.TransportProtocol, header.DestinationAddress, header.DestinationPort)
			c.remote = newProxyAddr(header.TransportProtocol, header.SourceAddress, header.SourcePort)
		}
	default:
		c.err = err
	}
}

// Read reads data from the connection, after the PROXY header.
func (c *Conn) Read(b []byte) (int, error) {
	if _, err := c.Header(); err != nil {
		return 0, err
	}
	return c.reader.Read(b)
}

// Write writes data to the connection.
func (c *Conn) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// Close closes the connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// LocalAddr returns the destination address from the PROXY header, or the
// local network address if there is none.
func (c *Conn) LocalAddr() net.Addr {
	c.Header()
	if c.local == nil {
		return c.conn.LocalAddr()
	}
	return c.local
}

// RemoteAddr returns the source address from the PROXY header, or the remote
// network address if there is none.
func (c *Conn) RemoteAddr() net.Addr {
	c.Header()
	if c.remote == nil {
		return c.conn.RemoteAddr()
	}
	return c.remote
}

// SetDeadline sets the read and write deadlines of the underlying connection.
func (c *Conn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

// SetReadDeadline sets the read deadline of the underlying connection.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline of the underlying connection.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.conn.SetWriteDeadline(t)
}
