// Package rules implements the set operations between domain/CIDR rule lists:
// entry normalization, suffix-aware exclusion and the suffix/exact split.
package rules

import (
	"sort"
	"strings"
)

// SuffixMarker prefixes entries matching a domain and all of its subdomains.
const SuffixMarker = "+."

// Clean strips surrounding whitespace and quote characters from an entry,
// keeping the suffix marker intact.
func Clean(entry string) string {
	s := strings.TrimSpace(entry)
	s = strings.Trim(s, "'")
	s = strings.Trim(s, `"`)
	return s
}

// Normalize returns the bare domain used for comparisons: Clean plus
// stripping the suffix marker.
func Normalize(entry string) string {
	return strings.TrimPrefix(Clean(entry), SuffixMarker)
}

// IsSuffix reports whether the cleaned entry carries the suffix marker.
func IsSuffix(entry string) bool {
	return strings.HasPrefix(Clean(entry), SuffixMarker)
}

// SuffixSet is a membership structure of normalized domain suffixes.
type SuffixSet map[string]struct{}

// NewSuffixSet builds a SuffixSet from the normalized projection of entries.
// Both suffix-marked and exact entries contribute their bare domain.
func NewSuffixSet(entries []string) SuffixSet {
	set := make(SuffixSet, len(entries))
	for _, e := range entries {
		d := Normalize(e)
		if d == "" {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

// Matches reports whether domain equals a member suffix or is a
// dot-separated subdomain of one. Matching is constrained to label
// boundaries: "notgoogle.com" does not match the suffix "google.com",
// "foo.google.com" does.
func (s SuffixSet) Matches(domain string) bool {
	if len(s) == 0 {
		return false
	}
	if _, ok := s[domain]; ok {
		return true
	}
	for i := strings.IndexByte(domain, '.'); i >= 0; i = strings.IndexByte(domain, '.') {
		domain = domain[i+1:]
		if _, ok := s[domain]; ok {
			return true
		}
	}
	return false
}

// Reduce returns the entries of base whose normalized form is not covered
// by the exclusion set. Retained entries keep their cleaned original
// spelling (marker included) and their relative order. An empty exclusion
// set yields the input unchanged.
func Reduce(base []string, excl SuffixSet) []string {
	result := make([]string, 0, len(base))
	for _, entry := range base {
		raw := Clean(entry)
		if excl.Matches(Normalize(raw)) {
			continue
		}
		if raw == "" {
			raw = entry
		}
		result = append(result, raw)
	}
	return result
}

// Split partitions domain entries into suffix entries (marker stripped) and
// exact entries. Both sides are deduplicated and sorted. Every input entry
// lands in exactly one side.
func Split(entries []string) (suffixes, exacts []string) {
	var suf, exa []string
	for _, entry := range entries {
		d := Clean(entry)
		if strings.HasPrefix(d, SuffixMarker) {
			suf = append(suf, strings.TrimPrefix(d, SuffixMarker))
		} else {
			exa = append(exa, d)
		}
	}
	return SortedUnique(suf), SortedUnique(exa)
}

// SortedUnique returns a sorted copy of entries with duplicates collapsed.
func SortedUnique(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	copy(out, entries)
	sort.Strings(out)

	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[i-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
