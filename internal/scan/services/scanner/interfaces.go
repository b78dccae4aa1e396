package scanner

import (
	"github.com/haukened/linkscan/internal/scan/domain"
	"github.com/haukened/linkscan/internal/scan/services/classifier"
)

// Classifier is the decision engine the scanner drives.
type Classifier interface {
	Classify(rawURL string, allow classifier.AllowList, typoThreshold, heuristicThreshold float64) domain.Decision
}

// AllowList is a versioned allow-list snapshot.
type AllowList interface {
	classifier.AllowList
	Version() uint64
}

// AllowListSource returns the allow-list snapshot to classify against.
type AllowListSource func() (AllowList, error)

// VerdictCache memoizes decisions by key. Purge drops every entry; the
// scanner calls it when the allow-list version changes.
type VerdictCache interface {
	Get(key string) (domain.Decision, bool)
	Put(key string, d domain.Decision)
	Purge()
}
