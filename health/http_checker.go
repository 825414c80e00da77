package health

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/icecave/relay/message"
	"github.com/icecave/relay/proxy"
	proxyproto "github.com/pires/go-proxyproto"
)

const requestHost = "localhost"
const requestPath = "/health"

// HTTPChecker is a checker that sends a health-check request to the relay.
type HTTPChecker struct {
	Address string

	// Timeout bounds the whole check. If zero, the check does not time out.
	Timeout time.Duration

	// ProxyProtocol, if true, sends a PROXY protocol LOCAL header before the
	// request, as required when the relay only accepts PROXY connections.
	ProxyProtocol bool

	// Dialer connects to the relay. If nil, a proxy.BasicDialer is used.
	Dialer proxy.Dialer
}

// Check returns information about the health of the relay.
func (checker *HTTPChecker) Check() Status {
	host, port, err := net.SplitHostPort(checker.Address)
	if err != nil {
		return Status{false, err.Error()}
	} else if host == "" {
		host = requestHost
	}

	address := net.JoinHostPort(host, port)
	ctx := context.Background()
	if checker.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, checker.Timeout)
		defer cancel()
	}

	conn, err := checker.dialer().Dial(ctx, address)
	if err != nil {
		return Status{false, err.Error()}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return Status{false, err.Error()}
		}
	}

	if checker.ProxyProtocol {
		header := proxyproto.Header{
			Command: proxyproto.LOCAL,
			Version: 2,
		}
		if _, err := header.WriteTo(conn); err != nil {
			return Status{false, err.Error()}
		}
	}

	req, err := message.NewRequest(
		message.MethodGet,
		"http://"+address+requestPath,
		nil,
		"",
	)
	if err != nil {
		return Status{false, err.Error()}
	}

	if _, err := conn.Write(req.Serialize()); err != nil {
		return Status{false, err.Error()}
	}

	res, err := message.ReadResponse(bufio.NewReader(conn))
	if err != nil {
		return Status{false, err.Error()}
	}

	n := res.Status.Number()
	return Status{
		200 <= n && n <= 299,
		res.Body,
	}
}

func (checker *HTTPChecker) dialer() proxy.Dialer {
	if checker.Dialer != nil {
		return checker.Dialer
	}
	return &proxy.BasicDialer{}
}
