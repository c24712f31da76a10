package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDomain is returned for domains with fewer than two labels.
var ErrInvalidDomain = errors.New("invalid domain name")

// ZoneFromDomain derives the hosted zone name a domain's records live in:
// the domain itself for an apex ("example.com"), otherwise the domain with
// its leftmost label dropped ("a.b.example.com" -> "b.example.com").
func ZoneFromDomain(domain string) (string, error) {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %s", ErrInvalidDomain, domain)
	}
	if len(parts) == 2 {
		return domain, nil
	}
	return strings.Join(parts[1:], "."), nil
}

// MustZoneFromDomain is ZoneFromDomain for synth-time callers, where an
// invalid domain is a configuration error.
func MustZoneFromDomain(domain string) string {
	zone, err := ZoneFromDomain(domain)
	if err != nil {
		panic(err)
	}
	return zone
}
