package domain

import (
	"fmt"
	"strings"
	"time"
)

// AllowEntry is a single known-good registrable domain sourced from a file or
// the built-in defaults.
//
// Notes:
// - Name is expected to be canonical (lowercase, no scheme, no path, no trailing dot).
// - Source identifies where the entry came from (file path or "config").
type AllowEntry struct {
	Name    string
	Source  string
	AddedAt time.Time
}

// NewAllowEntry constructs an AllowEntry and validates its fields.
func NewAllowEntry(name, source string, addedAt time.Time) (AllowEntry, error) {
	e := AllowEntry{
		Name:    strings.TrimSpace(name),
		Source:  strings.TrimSpace(source),
		AddedAt: addedAt,
	}
	if err := e.Validate(); err != nil {
		return AllowEntry{}, err
	}
	return e, nil
}

// Validate checks the AllowEntry for required fields.
func (e AllowEntry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("entry name must not be empty")
	}
	if strings.ContainsAny(e.Name, "/:@ \t") {
		return fmt.Errorf("entry name %q is not a bare domain", e.Name)
	}
	if e.Source == "" {
		return fmt.Errorf("entry source must not be empty")
	}
	if e.AddedAt.IsZero() {
		return fmt.Errorf("entry addedAt must be set")
	}
	return nil
}

// EntryNames returns the names of entries in order.
func EntryNames(entries []AllowEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
