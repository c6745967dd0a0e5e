package rules

import (
	"net/netip"
	"testing"
)

func TestDomainMatcher(t *testing.T) {
	m := NewDomainMatcher([]string{"+.google.com", "exact.example.com"})

	tests := []struct {
		name   string
		domain string
		want   bool
	}{
		{"suffix base", "google.com", true},
		{"suffix subdomain", "mail.google.com", true},
		{"suffix label boundary", "notgoogle.com", false},
		{"exact entry", "exact.example.com", true},
		{"subdomain of exact entry", "sub.exact.example.com", false},
		{"case insensitive", "Mail.GOOGLE.com", true},
		{"unrelated", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.domain); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestCIDRMatcher(t *testing.T) {
	m := NewCIDRMatcher([]string{"10.0.0.0/8", "'192.168.1.0/24'", "2001:db8::/32", "1.2.3.4", "not-a-cidr"})

	if m.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", m.Skipped)
	}

	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"inside /8", "10.1.2.3", true},
		{"outside /8", "11.0.0.1", false},
		{"quoted /24", "192.168.1.200", true},
		{"ipv6 inside", "2001:db8::1", true},
		{"ipv6 outside", "2001:db9::1", false},
		{"bare ip as /32", "1.2.3.4", true},
		{"neighbour of bare ip", "1.2.3.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := netip.MustParseAddr(tt.addr)
			if got := m.Contains(addr); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", addr, got, tt.want)
			}
		})
	}
}
