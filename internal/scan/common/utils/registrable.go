package utils

import (
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SplitHost splits a canonical hostname into subdomain, domain label and
// public suffix.
//
// Only the ICANN section of the public suffix list is honoured: private
// suffixes such as "github.io" are walked down to their ICANN parent, so
// "user.github.io" splits as ("", "github", "io"). A host under an unlisted
// TLD gets an empty suffix and its last label becomes the domain. Literal IP
// addresses are returned whole as the domain.
func SplitHost(host string) (subdomain, domain, suffix string) {
	host = CanonicalHostname(host)
	if host == "" {
		return "", "", ""
	}
	if IsIPLiteral(host) {
		return "", host, ""
	}

	suffix = icannSuffix(host)
	rest := host
	if suffix != "" {
		if rest == suffix {
			return "", "", suffix
		}
		rest = strings.TrimSuffix(host, "."+suffix)
	}

	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		return rest[:i], rest[i+1:], suffix
	}
	return "", rest, suffix
}

// RegistrableDomain returns the domain label joined with its public suffix,
// or the bare label when the suffix is empty. Hosts that are themselves a
// public suffix have no registrable domain and yield "".
func RegistrableDomain(host string) string {
	_, domain, suffix := SplitHost(host)
	return JoinRegistrable(domain, suffix)
}

// JoinRegistrable joins a domain label and suffix the way RegistrableDomain does.
func JoinRegistrable(domain, suffix string) string {
	switch {
	case domain == "":
		return ""
	case suffix == "":
		return domain
	default:
		return domain + "." + suffix
	}
}

// ListedRegistrableDomain is the registrable domain under the full public
// suffix list, private section included ("user.github.io" stays whole).
// It returns "" when the list has no answer for host.
func ListedRegistrableDomain(host string) string {
	d, err := publicsuffix.EffectiveTLDPlusOne(CanonicalHostname(host))
	if err != nil {
		return ""
	}
	return d
}

// IsIPLiteral reports whether host parses as an IPv4 or IPv6 address,
// with or without a zone.
func IsIPLiteral(host string) bool {
	_, err := netip.ParseAddr(host)
	return err == nil
}

// icannSuffix returns the longest ICANN public suffix of host, or "" when
// the TLD is not on the list.
func icannSuffix(host string) string {
	suffix, icann := publicsuffix.PublicSuffix(host)
	for !icann {
		i := strings.IndexByte(suffix, '.')
		if i < 0 {
			return ""
		}
		suffix, icann = publicsuffix.PublicSuffix(suffix[i+1:])
	}
	return suffix
}
