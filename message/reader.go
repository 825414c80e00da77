package message

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// ReadRequest reads a single request from r.
//
// The request target is resolved to an absolute URL. Targets that already
// carry an http:// or https:// scheme (as sent to a proxy) are used as-is,
// otherwise the target is combined with the Host header.
func ReadRequest(r *bufio.Reader) (*Request, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStartLine, err)
	}

	parts := strings.Fields(line)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedStartLine, line)
	}

	method, err := ParseMethod(parts[0])
	if err != nil {
		return nil, err
	}

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	u, err := resolveTarget(parts[1], header)
	if err != nil {
		return nil, err
	}

	body, err := readBody(r, header)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method: method,
		URL:    u,
		Proto:  parts[2],
		Header: header,
		Body:   body,
	}, nil
}

// ReadResponse reads a single response from r.
func ReadResponse(r *bufio.Reader) (*Response, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStartLine, err)
	}

	// The reason phrase may itself contain spaces, and may be empty.
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedStartLine, line)
	}

	switch parts[0] {
	case "HTTP/1.1", "HTTP/1.0":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, parts[0])
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatusCode, parts[1])
	}

	status, err := StatusFromNumber(n)
	if err != nil {
		return nil, err
	}

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	body, err := readBody(r, header)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: status,
		Header: header,
		Body:   body,
	}, nil
}

// readLine reads a line terminated by CRLF or LF, and returns it without the
// terminator. A line cut short by the end of the stream is an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}

	line = line[:len(line)-1]
	return strings.TrimSuffix(line, "\r"), nil
}

func readHeader(r *bufio.Reader) (Header, error) {
	h := Header{}

	for {
		line, err := readLine(r)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
		} else if err != nil {
			return nil, err
		}

		if line == "" {
			return h, nil
		}

		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}

		h[line[:i]] = strings.TrimSpace(line[i+1:])
	}
}

// readBody reads exactly Content-Length bytes. Without a Content-Length header
// the body is empty; nothing is read until the end of the stream.
func readBody(r *bufio.Reader, h Header) (string, error) {
	v, ok := h.Get("Content-Length")
	if !ok {
		return "", nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidContentLength, v)
	}

	var body strings.Builder
	copied, err := io.CopyN(&body, r, n)
	if err == io.EOF {
		return "", fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedBody, copied, n)
	} else if err != nil {
		return "", err
	}

	return body.String(), nil
}

func resolveTarget(target string, h Header) (*url.URL, error) {
	var u *url.URL

	if hasScheme(target) {
		t, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
		u = t
	} else {
		host, ok := h.Get("Host")
		if !ok || host == "" {
			return nil, ErrMissingHostHeader
		}

		// Some clients send a Host header that includes the scheme.
		if !hasScheme(host) {
			host = "http://" + host
		}

		base, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("%w: host %q: %v", ErrInvalidTarget, host, err)
		}

		// The target is taken as-is; dot segments are not resolved.
		ref, err := url.ParseRequestURI(target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}

		u = base
		u.Path = ref.Path
		u.RawPath = ref.RawPath
		u.RawQuery = ref.RawQuery
		u.ForceQuery = ref.ForceQuery
		u.Fragment = ""
		u.RawFragment = ""
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: no host in %q", ErrInvalidTarget, target)
	}

	if u.Path == "" {
		u.Path = "/"
	}

	return u, nil
}

func hasScheme(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
