package frontend

import (
	"context"
	"net"
	"sync"

	"go.uber.org/multierr"
)

// ConnHandler serves a single accepted connection.
type ConnHandler interface {
	ServeConn(ctx context.Context, conn net.Conn) error
}

// Server accepts connections and passes them to a ConnHandler.
type Server struct {
	Handler ConnHandler

	// Sequential, if true, serves one connection at a time, in the order they
	// are accepted. Otherwise each connection is served on its own goroutine.
	Sequential bool
}

// Serve accepts connections on l until ctx is canceled or l fails.
//
// l is closed when Serve returns. Serve waits for connections that are still
// being served before returning. A nil error is returned if Serve stopped
// because ctx was canceled.
func (server *Server) Serve(ctx context.Context, l net.Listener) error {
	var (
		once     sync.Once
		closeErr error
		wg       sync.WaitGroup
	)

	closeListener := func() {
		once.Do(func() {
			closeErr = l.Close()
		})
	}

	stop := context.AfterFunc(ctx, closeListener)
	defer stop()

	for {
		conn, err := l.Accept()
		if err != nil {
			closeListener()
			wg.Wait()

			if ctx.Err() != nil {
				return closeErr
			}
			return multierr.Append(err, closeErr)
		}

		if server.Sequential {
			server.serveConn(ctx, conn)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			server.serveConn(ctx, conn)
		}()
	}
}

// serveConn serves conn. Errors are already logged by the handler.
func (server *Server) serveConn(ctx context.Context, conn net.Conn) {
	_ = server.Handler.ServeConn(ctx, conn)
}
