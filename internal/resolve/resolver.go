// Package resolve performs plain UDP DNS lookups for the check command.
package resolve

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

const (
	defaultDNSPort = "53"

	clientTimeout = 3 * time.Second
)

// Resolver queries a single UDP DNS upstream.
type Resolver struct {
	address string
	client  *dns.Client
}

// NewResolver creates a resolver for the given upstream address.
// A missing port defaults to 53.
func NewResolver(address string) (*Resolver, error) {
	host := address
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, defaultDNSPort)
	}

	if _, _, err := net.SplitHostPort(host); err != nil {
		return nil, fmt.Errorf("invalid DNS upstream address: %w", err)
	}

	return &Resolver{
		address: host,
		client: &dns.Client{
			Net:     "udp",
			Timeout: clientTimeout,
		},
	}, nil
}

// Address returns the upstream address including port.
func (r *Resolver) Address() string {
	return r.address
}

// Lookup resolves the A and AAAA records of a domain.
func (r *Resolver) Lookup(ctx context.Context, domain string) ([]netip.Addr, error) {
	var addrs []netip.Addr

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(domain), qtype)
		msg.RecursionDesired = true

		resp, _, err := r.client.ExchangeContext(ctx, msg, r.address)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s for %s %s: %w",
				r.address, domain, dns.TypeToString[qtype], err)
		}

		for _, rr := range resp.Answer {
			switch record := rr.(type) {
			case *dns.A:
				if ip, ok := netip.AddrFromSlice(record.A.To4()); ok {
					addrs = append(addrs, ip)
				}
			case *dns.AAAA:
				if ip, ok := netip.AddrFromSlice(record.AAAA); ok {
					addrs = append(addrs, ip)
				}
			}
		}
	}

	return addrs, nil
}
