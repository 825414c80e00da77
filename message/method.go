package message

import "fmt"

// Method is an HTTP request method.
type Method uint8

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodOptions
	MethodHead
	MethodTrace
	MethodConnect
	MethodPatch
)

var methodNames = [...]string{
	MethodGet:     "GET",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodOptions: "OPTIONS",
	MethodHead:    "HEAD",
	MethodTrace:   "TRACE",
	MethodConnect: "CONNECT",
	MethodPatch:   "PATCH",
}

// ParseMethod returns the method named by token. The match is case-sensitive;
// only the canonical uppercase names are accepted.
func ParseMethod(token string) (Method, error) {
	for m, n := range methodNames {
		if n == token {
			return Method(m), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, token)
}

// String returns the canonical uppercase form of the method, as used in
// request lines.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}

	return fmt.Sprintf("Method(%d)", m)
}
