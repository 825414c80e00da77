package message

import "errors"

var (
	// ErrInvalidMethod indicates that a request line names an unsupported
	// method.
	ErrInvalidMethod = errors.New("invalid method")

	// ErrInvalidStatusCode indicates a status code outside of 100-599, or one
	// that is not a number at all.
	ErrInvalidStatusCode = errors.New("invalid status code")

	// ErrUnknownStatusCode indicates a well-formed status code that is not
	// part of the supported set.
	ErrUnknownStatusCode = errors.New("unknown status code")

	ErrMalformedStartLine   = errors.New("malformed start line")
	ErrMalformedHeader      = errors.New("malformed header")
	ErrTruncatedHeader      = errors.New("truncated header block")
	ErrMissingHostHeader    = errors.New("missing host header")
	ErrUnsupportedVersion   = errors.New("unsupported http version")
	ErrInvalidContentLength = errors.New("invalid content-length")
	ErrTruncatedBody        = errors.New("truncated body")
	ErrInvalidTarget        = errors.New("invalid request target")
)
