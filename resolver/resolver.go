package resolver

import (
	"context"
	"net"
)

// Resolver resolves host names to IP addresses.
type Resolver interface {
	// Resolve returns the addresses of host. It may return an empty slice
	// without an error if the name exists but has no addresses.
	Resolve(ctx context.Context, host string) ([]net.IP, error)
}

// SystemResolver resolves names using the platform's resolver.
type SystemResolver struct {
	// Resolver is the underlying resolver. If nil, net.DefaultResolver is used.
	Resolver *net.Resolver
}

// Resolve returns the addresses of host.
func (r *SystemResolver) Resolve(ctx context.Context, host string) ([]net.IP, error) {
	res := r.Resolver
	if res == nil {
		res = net.DefaultResolver
	}

	return res.LookupIP(ctx, "ip", host)
}
