package message

import "strconv"

// Response is an HTTP response, either read from an upstream server or
// produced locally.
type Response struct {
	Status StatusCode
	Header Header
	Body   string
}

// NewResponse returns a response with the given status and body, and a
// Content-Length header that matches the body.
func NewResponse(status StatusCode, body string) *Response {
	return &Response{
		Status: status,
		Header: Header{
			"Content-Length": strconv.Itoa(len(body)),
		},
		Body: body,
	}
}
