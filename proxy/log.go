package proxy

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/icecave/relay/message"
)

// LogContext holds information about a single request/response transaction
// used for logging.
type LogContext struct {
	Logger          *log.Logger
	ID              string
	RemoteAddr      string
	Local           bool
	UpstreamAddress string
	Metrics         Metrics
	Request         *message.Request
	Response        *message.Response

	buffer bytes.Buffer
}

// NewLogContext returns a log context for a transaction on a connection from
// remoteAddr, with a new transaction ID, and starts its timer.
func NewLogContext(logger *log.Logger, remoteAddr string) *LogContext {
	ctx := &LogContext{
		Logger:     logger,
		ID:         uuid.New().String(),
		RemoteAddr: remoteAddr,
	}
	ctx.Metrics.Start()

	return ctx
}

// Log writes a log entry for the context to the logger.
//
// The log format consists of the following space separated fields:
//
// - event type
// - transaction ID
// - remote address
// - target host
// - upstream address
// - request information (method, URI and protocol)
// - status code
// - time to first byte
// - time to last byte
// - bytes inbound (from the upstream server)
// - bytes outbound (to the client)
// - message (optional)
//
// The event types are:
// - "PROXY" - request forwarded to an upstream server
// - "LOCAL" - request answered by the relay itself
// - "ERROR" - request could not be parsed
//
// All fields are always present, except for the message which is optional. If a
// field value is unknown or not applicable, a hyphen is used in place. If a
// field value contains spaces or other special characters it is rendered as a
// double-quoted Go string.
func (ctx *LogContext) Log(err error) {
	if ctx.Logger == nil || ctx.isMuted() {
		return
	}

	// event type
	if ctx.Request == nil {
		ctx.write("ERROR")
	} else if ctx.Local {
		ctx.write("LOCAL")
	} else {
		ctx.write("PROXY")
	}

	ctx.write(ctx.ID)
	ctx.write(ctx.RemoteAddr)

	// target host + request information
	if ctx.Request == nil {
		ctx.write("")
		ctx.write(ctx.UpstreamAddress)
		ctx.write("")
	} else {
		ctx.write(ctx.Request.URL.Host)
		ctx.write(ctx.UpstreamAddress)
		proto := ctx.Request.Proto
		if proto == "" {
			proto = "HTTP/1.1"
		}
		ctx.write(
			"%s %s %s",
			ctx.Request.Method,
			ctx.Request.URL.RequestURI(),
			proto,
		)
	}

	// status code
	if ctx.Response == nil {
		ctx.write("")
	} else {
		ctx.write("%d", ctx.Response.Status.Number())
	}

	// time to first byte
	if ctx.Metrics.FirstByte > 0 {
		ctx.write(
			"f/%sms",
			humanize.FormatFloat("#,###.##", Milliseconds(ctx.Metrics.FirstByte)),
		)
	} else {
		ctx.write("")
	}

	// time to last byte
	if ctx.Metrics.LastByte > 0 {
		ctx.write(
			"l/%sms",
			humanize.FormatFloat("#,###.##", Milliseconds(ctx.Metrics.LastByte)),
		)
		ctx.write(
			"i/%s",
			humanize.FormatFloat("#,###.", float64(ctx.Metrics.BytesIn)),
		)
		ctx.write(
			"o/%s",
			humanize.FormatFloat("#,###.", float64(ctx.Metrics.BytesOut)),
		)
	} else {
		ctx.write("")
		ctx.write("")
		ctx.write("")
	}

	// optional message
	if err != nil {
		ctx.write(err.Error())
	}

	ctx.Logger.Println(ctx.buffer.String())
	ctx.buffer.Reset()
}

// write is a helper function that writes to a string to a buffer, quoting the
// string if it contains whitespace or special characters.
func (ctx *LogContext) write(str string, v ...interface{}) {
	if ctx.buffer.Len() != 0 {
		ctx.buffer.WriteRune(' ')
	}

	if len(v) != 0 {
		str = fmt.Sprintf(str, v...)
	}

	if str == "" {
		ctx.buffer.WriteRune('-')
		return
	}

	if strings.ContainsAny(str, " \a\b\f\n\r\t\v\"") {
		ctx.buffer.WriteString(strconv.Quote(str))
	} else {
		ctx.buffer.WriteString(str)
	}
}

// isMuted returns true for favicon requests the relay answered itself.
func (ctx *LogContext) isMuted() bool {
	if !ctx.Local || ctx.Request == nil {
		return false
	}

	return strings.Contains(ctx.Request.URL.Path, "/favicon.ico")
}
