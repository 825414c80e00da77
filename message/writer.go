package message

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Serialize renders the request in origin-form, as sent to an upstream
// server. Headers are written in no particular order.
func (r *Request) Serialize() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s HTTP/1.1\r\n", r.Method, r.URL.RequestURI())
	for k, v := range r.Header {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	buf.WriteString("\r\n")
	buf.WriteString(r.Body)
	buf.WriteString("\r\n")

	return buf.Bytes()
}

// Serialize renders the response. Header lines are sorted lexicographically
// and any NUL bytes are removed from the output.
func (r *Response) Serialize() []byte {
	lines := make([]string, 0, len(r.Header))
	for k, v := range r.Header {
		lines = append(lines, k+": "+v+"\r\n")
	}
	sort.Strings(lines)

	var buf strings.Builder
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", r.Status.Number(), r.Status.ReasonPhrase())
	for _, l := range lines {
		buf.WriteString(l)
	}
	buf.WriteString("\r\n")
	buf.WriteString(r.Body)

	return []byte(strings.ReplaceAll(buf.String(), "\x00", ""))
}
