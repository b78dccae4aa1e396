package classifier

import "github.com/haukened/linkscan/internal/scan/domain"

// AllowList is the read-only view of known-good registrable domains the
// classifier consults. Entries must be returned in a stable order.
type AllowList interface {
	Contains(registrable string) bool
	Entries() []string
}

// RiskScorer computes the heuristic score used when no domain rule fires.
type RiskScorer interface {
	Score(rawURL string) (float64, domain.ScoreBreakdown)
}

var _ AllowList = (*domain.AllowList)(nil)
