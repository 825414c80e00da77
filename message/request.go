package message

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Request is an HTTP request addressed to an absolute URL.
type Request struct {
	Method Method
	URL    *url.URL

	// Proto is the protocol version named on the request line, such as
	// "HTTP/1.1". Requests are always serialized as HTTP/1.1.
	Proto string

	Header Header
	Body   string
}

// NewRequest builds a request for the absolute http URL rawurl.
//
// A Host header is derived from the URL, and a Content-Length header from the
// body, unless header already contains them. Supplied values must agree with
// the URL and body, so that the request reads back unchanged after it has
// been serialized.
func NewRequest(method Method, rawurl string, header Header, body string) (*Request, error) {
	u, err := parseTarget(rawurl)
	if err != nil {
		return nil, err
	}

	h := header.Clone()
	if err := checkHeader(h); err != nil {
		return nil, err
	}

	if v, ok := h.Get("Host"); !ok {
		h["Host"] = u.Host
	} else if v != u.Host {
		return nil, fmt.Errorf("%w: host header %q does not match %q", ErrInvalidTarget, v, u.Host)
	}

	if v, ok := h.Get("Content-Length"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n != len(body) {
			return nil, fmt.Errorf("%w: %q does not match a %d byte body", ErrInvalidContentLength, v, len(body))
		}
	} else if body != "" {
		h["Content-Length"] = strconv.Itoa(len(body))
	}

	return &Request{
		Method: method,
		URL:    u,
		Proto:  "HTTP/1.1",
		Header: h,
		Body:   body,
	}, nil
}

// Port returns the port of the request's target, or "80" if the URL does not
// specify one.
func (r *Request) Port() string {
	if p := r.URL.Port(); p != "" {
		return p
	}
	return "80"
}

// parseTarget parses an absolute http URL that can be written as an
// origin-form request line plus a Host header.
func parseTarget(rawurl string) (*url.URL, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	switch {
	case !u.IsAbs() || u.Host == "":
		return nil, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidTarget, rawurl)
	case u.Scheme != "http":
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidTarget, u.Scheme)
	case u.User != nil:
		return nil, fmt.Errorf("%w: %q contains user information", ErrInvalidTarget, rawurl)
	case u.Fragment != "" || strings.Contains(rawurl, "#"):
		return nil, fmt.Errorf("%w: %q contains a fragment", ErrInvalidTarget, rawurl)
	}

	if u.Path == "" {
		u.Path = "/"
	}

	return u, nil
}

// checkHeader rejects headers that would not read back as written.
func checkHeader(h Header) error {
	for k, v := range h {
		if k == "" || k != strings.TrimSpace(k) || strings.ContainsAny(k, ":\r\n") {
			return fmt.Errorf("%w: invalid name %q", ErrMalformedHeader, k)
		}
		if v != strings.TrimSpace(v) || strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: invalid value for %s", ErrMalformedHeader, k)
		}
	}
	return nil
}
