package health

import (
	"strings"

	"github.com/icecave/relay/message"
)

// Handler answers health-check requests on behalf of the relay, without
// contacting any upstream server.
type Handler struct{}

// CanHandle returns true if req is a health-check request. Browser favicon
// requests are treated the same way.
func (handler *Handler) CanHandle(req *message.Request) bool {
	return strings.Contains(req.URL.Path, "/health") ||
		strings.Contains(req.URL.Path, "/favicon.ico")
}

// Serve returns the health-check response.
func (handler *Handler) Serve(req *message.Request) *message.Response {
	return message.NewResponse(message.StatusOK, "OK")
}
