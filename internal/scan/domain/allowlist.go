package domain

import "strings"

// AllowList is an immutable, ordered set of known-good registrable domains.
// Iteration order is the order names were first supplied, which keeps the
// brand-in-subdomain rule reproducible.
type AllowList struct {
	names []string
	set   map[string]struct{}
}

// NewAllowList builds an AllowList. Names are lowercased and trimmed;
// blanks and duplicates are dropped.
func NewAllowList(names ...string) *AllowList {
	l := &AllowList{
		names: make([]string, 0, len(names)),
		set:   make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		n = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(n)), ".")
		if n == "" {
			continue
		}
		if _, ok := l.set[n]; ok {
			continue
		}
		l.set[n] = struct{}{}
		l.names = append(l.names, n)
	}
	return l
}

// Contains reports exact membership.
func (l *AllowList) Contains(name string) bool {
	if l == nil {
		return false
	}
	_, ok := l.set[name]
	return ok
}

// Entries returns the names in iteration order. Callers must not modify the slice.
func (l *AllowList) Entries() []string {
	if l == nil {
		return nil
	}
	return l.names
}

// Len returns the number of entries.
func (l *AllowList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}
