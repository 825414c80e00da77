package message

import "fmt"

// StatusCode is one of the HTTP status codes understood by the proxy.
//
// The set is closed. Values are obtained from the Status* constants or from
// StatusFromNumber, never by converting an integer.
type StatusCode uint8

const (
	StatusOK StatusCode = iota
	StatusMovedPermanently
	StatusFound
	StatusInvalidRequest
	StatusUnauthorized
	StatusForbidden
	StatusNotFound
	StatusMethodNotAllowed
	StatusNotAcceptable
	StatusInternalServerError
	StatusNotImplemented
	StatusBadGateway
)

type statusEntry struct {
	number int
	reason string
}

var statusTable = [...]statusEntry{
	StatusOK:                  {200, "OK"},
	StatusMovedPermanently:    {301, "Moved Permanently"},
	StatusFound:               {302, "Found"},
	StatusInvalidRequest:      {400, "Invalid Request"},
	StatusUnauthorized:        {401, "Unauthorized"},
	StatusForbidden:           {403, "Forbidden"},
	StatusNotFound:            {404, "Not Found"},
	StatusMethodNotAllowed:    {405, "Method Not Allowed"},
	StatusNotAcceptable:       {406, "Not Acceptable"},
	StatusInternalServerError: {500, "Internal Server Error"},
	StatusNotImplemented:      {501, "Not Implemented"},
	StatusBadGateway:          {502, "Bad Gateway"},
}

// StatusFromNumber returns the status code with the given numeric value.
//
// Numbers outside of 100-599 produce ErrInvalidStatusCode. Numbers within that
// range that are not supported produce ErrUnknownStatusCode.
func StatusFromNumber(n int) (StatusCode, error) {
	if n < 100 || n > 599 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStatusCode, n)
	}

	for s, e := range statusTable {
		if e.number == n {
			return StatusCode(s), nil
		}
	}

	return 0, fmt.Errorf("%w: %d", ErrUnknownStatusCode, n)
}

// Number returns the numeric value of the status code.
func (s StatusCode) Number() int {
	return s.entry().number
}

// ReasonPhrase returns the reason phrase sent alongside the status code.
func (s StatusCode) ReasonPhrase() string {
	return s.entry().reason
}

func (s StatusCode) String() string {
	e := s.entry()
	return fmt.Sprintf("%d %s", e.number, e.reason)
}

func (s StatusCode) entry() statusEntry {
	if int(s) < len(statusTable) {
		return statusTable[s]
	}

	// Unreachable for values obtained through the package API.
	return statusTable[StatusInternalServerError]
}
