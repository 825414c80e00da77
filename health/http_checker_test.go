package health_test

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/icecave/relay/frontend"
	"github.com/icecave/relay/health"
	"github.com/icecave/relay/message"
	"github.com/icecave/relay/proxyprotocol"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

// deadlineConn is a connection whose deadline cannot be set.
type deadlineConn struct {
	net.Conn
}

func (c *deadlineConn) SetDeadline(time.Time) error {
	return errors.New("<deadline error>")
}

type deadlineDialer struct{}

func (deadlineDialer) Dial(ctx context.Context, address string) (net.Conn, error) {
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	return &deadlineConn{conn}, nil
}

var _ = Describe("HTTPChecker", func() {
	var (
		listener net.Listener
		subject  *health.HTTPChecker
		received chan *message.Request
		response *message.Response
		delay    time.Duration
	)

	serve := func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			go func() {
				defer conn.Close()

				req, err := message.ReadRequest(bufio.NewReader(conn))
				if err != nil {
					return
				}
				received <- req

				time.Sleep(delay)
				conn.Write(response.Serialize())
			}()
		}
	}

	BeforeEach(func() {
		var err error
		listener, err = net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ShouldNot(HaveOccurred())

		received = make(chan *message.Request, 10)
		response = message.NewResponse(message.StatusOK, "<ok message>")
		delay = 0
		go serve()

		subject = &health.HTTPChecker{
			Address: listener.Addr().String(),
			Timeout: 2 * time.Second,
		}
	})

	AfterEach(func() {
		listener.Close()
	})

	DescribeTable(
		"Check",
		func(status message.StatusCode, msg string, expected health.Status) {
			response = message.NewResponse(status, msg)
			Expect(subject.Check()).To(Equal(expected))
		},
		Entry(
			"healthy response",
			message.StatusOK,
			"<ok message>",
			health.Status{IsHealthy: true, Message: "<ok message>"},
		),
		Entry(
			"unhealthy response",
			message.StatusInternalServerError,
			"<error message>",
			health.Status{IsHealthy: false, Message: "<error message>"},
		),
	)

	Describe("Check", func() {
		It("requests the health-check path", func() {
			subject.Check()

			var req *message.Request
			Eventually(received).Should(Receive(&req))
			Expect(req.Method).To(Equal(message.MethodGet))
			Expect(req.URL.Path).To(Equal("/health"))
		})

		It("defaults to localhost", func() {
			_, port, _ := net.SplitHostPort(listener.Addr().String())
			subject.Address = fmt.Sprintf(":%s", port)

			Expect(subject.Check().IsHealthy).To(BeTrue())

			var req *message.Request
			Eventually(received).Should(Receive(&req))
			Expect(req.URL.Hostname()).To(Equal("localhost"))
		})

		It("returns an unhealthy status when the address is invalid", func() {
			subject.Address = "x"

			expected := health.Status{
				IsHealthy: false,
				Message:   "address x: missing port in address",
			}

			Expect(subject.Check()).To(Equal(expected))
		})

		It("returns an unhealthy status when the check is too slow", func() {
			delay = time.Second
			subject.Timeout = 100 * time.Millisecond

			result := subject.Check()

			Expect(result.IsHealthy).To(BeFalse())
			Expect(result.Message).To(ContainSubstring("timeout"))
		})

		It("returns an unhealthy status when the deadline cannot be set", func() {
			subject.Dialer = deadlineDialer{}

			expected := health.Status{
				IsHealthy: false,
				Message:   "<deadline error>",
			}

			Expect(subject.Check()).To(Equal(expected))
		})

		It("returns an unhealthy status when the server is unreachable", func() {
			listener.Close()

			result := subject.Check()

			Expect(result.IsHealthy).To(BeFalse())
			Expect(result.Message).To(ContainSubstring("connection refused"))
		})
	})

	Context("when the relay requires the PROXY protocol", func() {
		var (
			relayListener net.Listener
			cancel        context.CancelFunc
			done          chan error
		)

		BeforeEach(func() {
			l, err := net.Listen("tcp", "127.0.0.1:0")
			Expect(err).ShouldNot(HaveOccurred())
			relayListener = proxyprotocol.NewListener(l)

			server := &frontend.Server{
				Handler: &frontend.Handler{
					Interceptors: []frontend.ConditionalHandler{&health.Handler{}},
				},
			}

			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			done = make(chan error, 1)
			go func() {
				done <- server.Serve(ctx, relayListener)
			}()

			subject.Address = l.Addr().String()
			subject.ProxyProtocol = true
		})

		AfterEach(func() {
			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})

		It("sends a LOCAL header before the request", func() {
			expected := health.Status{
				IsHealthy: true,
				Message:   "OK",
			}

			Expect(subject.Check()).To(Equal(expected))
		})
	})
})
