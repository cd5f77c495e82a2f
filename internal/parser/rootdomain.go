package parser

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// IsRootDomain reports whether domain is a root/registrable domain: the
// public suffix plus exactly one label. Subdomains and domains containing
// spaces are rejected.
func IsRootDomain(domain string) bool {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" || strings.Contains(d, " ") {
		return false
	}
	d = strings.TrimSuffix(d, ".")

	etldPlusOne, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return false
	}
	return etldPlusOne == d
}

// RootDomainOf reduces a domain to its registrable root domain. If the root
// domain cannot be derived (for example a bare public suffix), the lowercased
// input is returned unchanged.
func RootDomainOf(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimSuffix(d, ".")

	etldPlusOne, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return d
	}
	return etldPlusOne
}
