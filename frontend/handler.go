package frontend

import (
	"bufio"
	"context"
	"log"
	"net"
	"time"

	"github.com/icecave/relay/journal"
	"github.com/icecave/relay/message"
	"github.com/icecave/relay/proxy"
	"github.com/icecave/relay/statuspage"
	"go.uber.org/multierr"
)

// Forwarder sends a request to its upstream server. It is implemented by
// *proxy.Engine.
type Forwarder interface {
	Execute(ctx context.Context, req *message.Request, logContext *proxy.LogContext) (*message.Response, error)
}

// Handler serves a single request/response exchange on each connection it is
// given, then closes the connection.
type Handler struct {
	Forwarder    Forwarder
	Interceptors []ConditionalHandler
	StatusPages  *statuspage.TemplateWriter
	Journal      journal.Recorder
	Logger       *log.Logger
}

// ServeConn reads one request from conn, answers it, and closes conn.
//
// A request that cannot be read is answered with 400 Invalid Request. A request
// accepted by one of the interceptors is answered by it. Any other request is
// forwarded, and a forwarding failure is answered with 500 Internal Server
// Error.
//
// Canceling ctx interrupts a request that is still being read. A request that
// has already been read is answered in full.
//
// The returned error describes failures writing the response or closing the
// connection. Failures of the transaction itself are logged, not returned.
func (handler *Handler) ServeConn(ctx context.Context, conn net.Conn) error {
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	// RemoteAddr may block reading a PROXY protocol header.
	logContext := proxy.NewLogContext(handler.Logger, conn.RemoteAddr().String())

	res, txnErr := handler.exchange(ctx, conn, logContext)
	logContext.Response = res

	err := multierr.Combine(
		handler.write(conn, res, logContext),
		conn.Close(),
	)

	txnErr = multierr.Append(txnErr, err)
	logContext.Log(txnErr)
	handler.record(ctx, logContext, txnErr)

	return err
}

// exchange reads the request from conn and produces its response. The
// response is never nil.
func (handler *Handler) exchange(
	ctx context.Context,
	conn net.Conn,
	logContext *proxy.LogContext,
) (*message.Response, error) {
	req, err := message.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		return handler.statusPages().Write(nil, message.StatusInvalidRequest), err
	}
	logContext.Request = req

	for _, interceptor := range handler.Interceptors {
		if interceptor.CanHandle(req) {
			logContext.Local = true
			return interceptor.Serve(req), nil
		}
	}

	res, err := handler.Forwarder.Execute(context.WithoutCancel(ctx), req, logContext)
	if err != nil {
		return handler.statusPages().Write(req, message.StatusInternalServerError), err
	}

	return res, nil
}

func (handler *Handler) write(
	conn net.Conn,
	res *message.Response,
	logContext *proxy.LogContext,
) error {
	data := res.Serialize()

	logContext.Metrics.MarkFirstByte()
	n, err := conn.Write(data)
	logContext.Metrics.BytesOut = int64(n)
	logContext.Metrics.MarkLastByte()

	return err
}

func (handler *Handler) record(
	ctx context.Context,
	logContext *proxy.LogContext,
	err error,
) {
	if handler.Journal == nil {
		return
	}

	entry := journal.Entry{
		ID:         logContext.ID,
		Time:       logContext.Metrics.StartedAt,
		RemoteAddr: logContext.RemoteAddr,
		Upstream:   logContext.UpstreamAddress,
		Local:      logContext.Local,
		BytesIn:    logContext.Metrics.BytesIn,
		BytesOut:   logContext.Metrics.BytesOut,
		DurationMS: proxy.Milliseconds(logContext.Metrics.LastByte),
	}

	if req := logContext.Request; req != nil {
		entry.Method = req.Method.String()
		entry.URL = req.URL.String()
	}

	if res := logContext.Response; res != nil {
		entry.Status = res.Status.Number()
	}

	if err != nil {
		entry.Error = err.Error()
	}

	// The transaction is recorded even when the relay is shutting down.
	if err := handler.Journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		if handler.Logger != nil {
			handler.Logger.Printf("unable to record transaction %s: %s", entry.ID, err)
		}
	}
}

func (handler *Handler) statusPages() *statuspage.TemplateWriter {
	if handler.StatusPages != nil {
		return handler.StatusPages
	}
	return &statuspage.TemplateWriter{}
}
