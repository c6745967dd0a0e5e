package rules

import (
	"net/netip"
	"strings"
)

// DomainMatcher answers membership queries against one domain rule list.
// Suffix-marked entries match the domain and all of its subdomains, plain
// entries match exactly.
type DomainMatcher struct {
	suffixes SuffixSet
	exacts   map[string]struct{}
}

// NewDomainMatcher builds a matcher from raw list entries. Matching is
// case-insensitive.
func NewDomainMatcher(entries []string) *DomainMatcher {
	suffixes, exacts := Split(entries)

	m := &DomainMatcher{
		suffixes: make(SuffixSet, len(suffixes)),
		exacts:   make(map[string]struct{}, len(exacts)),
	}
	for _, s := range suffixes {
		m.suffixes[strings.ToLower(s)] = struct{}{}
	}
	for _, e := range exacts {
		m.exacts[strings.ToLower(e)] = struct{}{}
	}
	return m
}

// Matches reports whether the domain is covered by the list.
func (m *DomainMatcher) Matches(domain string) bool {
	d := Normalize(strings.ToLower(domain))
	if _, ok := m.exacts[d]; ok {
		return true
	}
	return m.suffixes.Matches(d)
}

// CIDRMatcher answers containment queries against one CIDR rule list.
type CIDRMatcher struct {
	prefixes []netip.Prefix

	// Skipped counts entries that did not parse as an IP or CIDR.
	Skipped int
}

// NewCIDRMatcher builds a matcher from raw list entries. A bare IP is
// treated as a single-address network.
func NewCIDRMatcher(entries []string) *CIDRMatcher {
	m := &CIDRMatcher{}

	for _, entry := range entries {
		line := Clean(entry)
		if line == "" {
			continue
		}

		if !strings.Contains(line, "/") {
			if addr, err := netip.ParseAddr(line); err == nil {
				bits := 32
				if addr.Is6() {
					bits = 128
				}
				m.prefixes = append(m.prefixes, netip.PrefixFrom(addr, bits))
				continue
			}
			m.Skipped++
			continue
		}

		if prefix, err := netip.ParsePrefix(line); err == nil {
			m.prefixes = append(m.prefixes, prefix.Masked())
		} else {
			m.Skipped++
		}
	}
	return m
}

// Contains reports whether addr falls into any of the list's networks.
func (m *CIDRMatcher) Contains(addr netip.Addr) bool {
	for _, prefix := range m.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
