package resolver

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// DNSResolver resolves names by querying a specific DNS server directly,
// bypassing the platform's resolver configuration.
//
// A records are preferred; AAAA records are only queried if there are no A
// records.
type DNSResolver struct {
	// Server is the address of the DNS server, including the port.
	Server string

	// Timeout bounds each query. Zero means dns.Client's default.
	Timeout time.Duration
}

// Resolve returns the addresses of host.
func (r *DNSResolver) Resolve(ctx context.Context, host string) ([]net.IP, error) {
	ips, err := r.query(ctx, host, dns.TypeA)
	if err != nil || len(ips) > 0 {
		return ips, err
	}

	return r.query(ctx, host, dns.TypeAAAA)
}

func (r *DNSResolver) query(ctx context.Context, host string, qtype uint16) ([]net.IP, error) {
	client := &dns.Client{Timeout: r.Timeout}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), qtype)

	in, _, err := client.ExchangeContext(ctx, msg, r.Server)
	if err != nil {
		return nil, err
	}

	if in.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf(
			"%s lookup of %s via %s: %s",
			dns.TypeToString[qtype],
			host,
			r.Server,
			dns.RcodeToString[in.Rcode],
		)
	}

	var ips []net.IP
	for _, rr := range in.Answer {
		switch v := rr.(type) {
		case *dns.A:
			ips = append(ips, v.A)
		case *dns.AAAA:
			ips = append(ips, v.AAAA)
		}
	}

	return ips, nil
}
