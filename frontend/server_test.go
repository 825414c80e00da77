package frontend_test

import (
	"context"
	"errors"
	"io/ioutil"
	"net"
	"sync/atomic"
	"time"

	"github.com/icecave/relay/frontend"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type connHandlerFunc func(context.Context, net.Conn) error

func (fn connHandlerFunc) ServeConn(ctx context.Context, conn net.Conn) error {
	return fn(ctx, conn)
}

// failingListener is a listener whose Accept always fails.
type failingListener struct {
	net.Listener
	err error
}

func (l *failingListener) Accept() (net.Conn, error) {
	return nil, l.err
}

var _ = Describe("Server", func() {
	var (
		listener net.Listener
		inFlight int32
		maxSeen  int32
		release  chan struct{}
		subject  *frontend.Server
		ctx      context.Context
		cancel   context.CancelFunc
		done     chan error
	)

	BeforeEach(func() {
		var err error
		listener, err = net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ShouldNot(HaveOccurred())

		inFlight = 0
		maxSeen = 0
		release = make(chan struct{})

		subject = &frontend.Server{
			Handler: connHandlerFunc(func(_ context.Context, conn net.Conn) error {
				n := atomic.AddInt32(&inFlight, 1)
				defer atomic.AddInt32(&inFlight, -1)

				for {
					m := atomic.LoadInt32(&maxSeen)
					if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
						break
					}
				}

				<-release
				conn.Write([]byte("done"))
				return conn.Close()
			}),
		}

		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
	})

	AfterEach(func() {
		cancel()
		listener.Close()
	})

	serve := func() {
		go func() {
			done <- subject.Serve(ctx, listener)
		}()
	}

	dial := func() net.Conn {
		conn, err := net.Dial("tcp", listener.Addr().String())
		Expect(err).ShouldNot(HaveOccurred())
		return conn
	}

	It("serves connections concurrently", func() {
		serve()

		a, b, c := dial(), dial(), dial()
		defer a.Close()
		defer b.Close()
		defer c.Close()

		Eventually(func() int32 { return atomic.LoadInt32(&inFlight) }).Should(BeEquivalentTo(3))
		close(release)

		for _, conn := range []net.Conn{a, b, c} {
			data, err := ioutil.ReadAll(conn)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(data)).To(Equal("done"))
		}
	})

	It("serves connections one at a time when sequential", func() {
		subject.Sequential = true
		serve()

		a, b := dial(), dial()
		defer a.Close()
		defer b.Close()

		Eventually(func() int32 { return atomic.LoadInt32(&inFlight) }).Should(BeEquivalentTo(1))
		Consistently(func() int32 { return atomic.LoadInt32(&inFlight) }, 100*time.Millisecond).Should(BeEquivalentTo(1))
		close(release)

		for _, conn := range []net.Conn{a, b} {
			data, err := ioutil.ReadAll(conn)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(data)).To(Equal("done"))
		}
		Expect(atomic.LoadInt32(&maxSeen)).To(BeEquivalentTo(1))
	})

	It("stops when the context is canceled, after in-flight connections are served", func() {
		serve()

		conn := dial()
		defer conn.Close()

		Eventually(func() int32 { return atomic.LoadInt32(&inFlight) }).Should(BeEquivalentTo(1))
		cancel()
		Consistently(done, 100*time.Millisecond).ShouldNot(Receive())

		close(release)
		Eventually(done).Should(Receive(BeNil()))

		_, err := net.Dial("tcp", listener.Addr().String())
		Expect(err).Should(HaveOccurred())
	})

	It("returns accept errors", func() {
		l := &failingListener{
			Listener: listener,
			err:      errors.New("<error>"),
		}

		err := subject.Serve(ctx, l)
		Expect(err).To(MatchError("<error>"))
	})
})
