package domain

import "fmt"

// Fixed reasons for the domain-level rules.
const (
	ReasonNoHostname       = "no hostname could be extracted"
	ReasonKnownGood        = "known-good registrable domain"
	ReasonBrandInSubdomain = "brand token present in subdomain, registrable domain differs"
	ReasonNearDuplicate    = "registrable domain is a near-duplicate of a known-good domain"
)

// Decision is the outcome of classifying one URL.
// Pure value type; fields past Reason are supporting evidence.
type Decision struct {
	Verdict     Verdict
	URL         string // the evaluated URL, verbatim
	Registrable string // registrable domain used for matching ("" when none)
	Reason      string
	Rule        Rule

	// MatchedEntry is the allow-list entry that triggered an exact,
	// brand or near-duplicate rule.
	MatchedEntry string
	// Similarity is the best ratio found by the near-duplicate rule.
	Similarity float64

	// Score, Threshold and Breakdown are set on the heuristic path.
	Score     float64
	Threshold float64
	Breakdown ScoreBreakdown

	// Closest is the allow-list entry whose label is most similar to the
	// domain label, reported on the heuristic path when one exists.
	Closest           string
	ClosestSimilarity float64
}

// IsPhishing is a convenience accessor.
func (d Decision) IsPhishing() bool { return d.Verdict == VerdictPhishing }

// IsSafe is a convenience accessor.
func (d Decision) IsSafe() bool { return d.Verdict == VerdictSafe }

// HeuristicReason formats the reason for the score-based rule.
func HeuristicReason(score, threshold float64) string {
	if score >= threshold {
		return fmt.Sprintf("heuristic score %.2f >= threshold %.2f", score, threshold)
	}
	return fmt.Sprintf("heuristic score %.2f below threshold %.2f", score, threshold)
}
