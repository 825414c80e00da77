package name

import (
	"fmt"
	"strings"

	"github.com/icecave/relay/message"
	"golang.org/x/net/idna"
)

// Host is a normalized upstream host name.
type Host struct {
	Unicode  string
	Punycode string
}

// Parse normalizes an upstream host name. A single trailing dot, as in a
// fully-qualified name, is ignored.
func Parse(host string) (Host, error) {
	lowercase := strings.ToLower(strings.TrimSuffix(host, "."))

	punycode, err := idna.ToASCII(lowercase)
	if err != nil {
		return Host{}, err
	} else if !isHostName(punycode) {
		return Host{}, fmt.Errorf("invalid host name '%s'", host)
	}

	unicode, err := idna.ToUnicode(lowercase)
	if err != nil {
		return Host{}, err
	}

	return Host{unicode, punycode}, nil
}

// FromRequest parses the host name of a request's target URL.
func FromRequest(req *message.Request) (Host, error) {
	return Parse(req.URL.Hostname())
}

// isHostName reports whether s is a DNS host name in ASCII form.
//
// At least one label must contain a letter, so that a malformed IPv4 address
// is never looked up as a name.
func isHostName(s string) bool {
	if s == "" || len(s) > 255 {
		return false
	}

	hasLetter := false
	for _, label := range strings.Split(s, ".") {
		if label == "" || len(label) > 63 {
			return false
		} else if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}

		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', c == '_':
				hasLetter = true
			case '0' <= c && c <= '9', c == '-':
			default:
				return false
			}
		}
	}

	return hasLetter
}
