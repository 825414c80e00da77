package frontend

import "github.com/icecave/relay/message"

// ConditionalHandler is an interface for handlers that optionally intercept an
// incoming request, answering it without contacting an upstream server.
type ConditionalHandler interface {
	// CanHandle returns true if request can be served by this handler.
	CanHandle(*message.Request) bool

	// Serve returns the response to request.
	Serve(*message.Request) *message.Response
}
