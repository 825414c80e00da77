package message

import "strings"

// Header is the header block of a request or response.
//
// Each name maps to a single value; when a message repeats a header the last
// occurrence wins. Names are stored exactly as received.
type Header map[string]string

// Get returns the value of the named header. An exact match on the name is
// preferred, otherwise the first case-insensitive match is used.
func (h Header) Get(name string) (string, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}

	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}

	return "", false
}

// Clone returns a copy of h. The result is never nil.
func (h Header) Clone() Header {
	c := make(Header, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}
