package domain

// DomainParts is the public-suffix-aware split of a URL's hostname.
// Pure value type, recomputed per call.
type DomainParts struct {
	Subdomain string // leading labels, possibly empty ("www.google" for www.google.evil.com)
	Domain    string // label directly below the public suffix
	Suffix    string // public suffix, possibly empty ("co.uk")
}

// Registrable returns Domain + "." + Suffix, or Domain alone when Suffix is empty.
// A hostname that is itself a public suffix has no registrable domain.
func (p DomainParts) Registrable() string {
	switch {
	case p.Domain == "":
		return ""
	case p.Suffix == "":
		return p.Domain
	default:
		return p.Domain + "." + p.Suffix
	}
}

// IsEmpty reports whether no hostname could be extracted.
func (p DomainParts) IsEmpty() bool {
	return p.Subdomain == "" && p.Domain == "" && p.Suffix == ""
}
