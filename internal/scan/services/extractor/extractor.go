// Package extractor splits URLs into subdomain, registrable domain label and
// public suffix.
package extractor

import (
	"net/url"
	"strings"

	"github.com/haukened/linkscan/internal/scan/common/utils"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// Extract parses rawURL and splits its hostname using the ICANN public
// suffix list. Input without a parsable hostname (schemeless strings,
// malformed URLs) yields empty DomainParts; Extract never fails.
func Extract(rawURL string) domain.DomainParts {
	host, ok := Hostname(rawURL)
	if !ok {
		return domain.DomainParts{}
	}
	sub, d, suffix := utils.SplitHost(host)
	return domain.DomainParts{Subdomain: sub, Domain: d, Suffix: suffix}
}

// Hostname returns the canonical hostname of rawURL and whether one exists.
func Hostname(rawURL string) (string, bool) {
	u, err := Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := utils.CanonicalHostname(u.Hostname())
	return host, host != ""
}

// Parse parses rawURL after trimming surrounding whitespace.
func Parse(rawURL string) (*url.URL, error) {
	return url.Parse(strings.TrimSpace(rawURL))
}

// SecondLevelLabel returns the domain label of an allow-list entry, the part
// compared by the brand and near-duplicate rules ("google" for "google.com",
// "example" for "example.co.uk").
func SecondLevelLabel(entry string) string {
	_, d, _ := utils.SplitHost(entry)
	return d
}
