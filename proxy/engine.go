package proxy

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/icecave/relay/message"
	"github.com/icecave/relay/name"
	"github.com/icecave/relay/resolver"
)

// Engine forwards requests to the origin server named by their target URL.
//
// Each call to Execute uses a new connection, which is closed before Execute
// returns. Nothing is retried.
type Engine struct {
	// Resolver resolves target host names. If nil, the system resolver is
	// used.
	Resolver resolver.Resolver

	// Dialer connects to upstream servers. If nil, a BasicDialer is used.
	Dialer Dialer

	// Timeout, if non-zero, bounds the time spent writing the request to and
	// reading the response from the upstream server.
	Timeout time.Duration
}

// Execute sends req to its origin server and returns the server's response.
//
// logContext, if non-nil, is updated with the upstream address and the number
// of bytes read from the upstream server.
func (engine *Engine) Execute(
	ctx context.Context,
	req *message.Request,
	logContext *LogContext,
) (*message.Response, error) {
	if logContext == nil {
		logContext = &LogContext{}
	}

	ip, err := engine.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	address := net.JoinHostPort(ip.String(), req.Port())
	logContext.UpstreamAddress = address

	conn, err := engine.dialer().Dial(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnectFailure, address, err)
	}
	defer conn.Close()

	if engine.Timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(engine.Timeout)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConnectFailure, address, err)
		}
	}

	payload := req.Serialize()
	n, err := conn.Write(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteFailure, address, err)
	} else if n != len(payload) {
		return nil, fmt.Errorf("%w: %s: wrote %d of %d bytes", ErrWriteFailure, address, n, len(payload))
	}

	counter := &countingReader{Reader: conn}
	res, err := message.ReadResponse(bufio.NewReader(counter))
	logContext.Metrics.BytesIn = counter.Count
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", address, err)
	}

	return res, nil
}

// resolve returns the address to connect to for req. Only the first address
// returned by the resolver is used.
func (engine *Engine) resolve(ctx context.Context, req *message.Request) (net.IP, error) {
	host := req.URL.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}

	n, err := name.FromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolutionFailure, err)
	}

	r := engine.Resolver
	if r == nil {
		r = &resolver.SystemResolver{}
	}

	ips, err := r.Resolve(ctx, n.Punycode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResolutionFailure, n.Unicode, err)
	} else if len(ips) == 0 {
		return nil, fmt.Errorf("%w: %s has no addresses", ErrResolutionFailure, n.Unicode)
	}

	return ips[0], nil
}

func (engine *Engine) dialer() Dialer {
	if engine.Dialer != nil {
		return engine.Dialer
	}
	return &BasicDialer{}
}

type countingReader struct {
	io.Reader
	Count int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.Count += int64(n)
	return n, err
}
