// Package classifier decides whether a URL is safe, phishing or unknown.
//
// Rules are evaluated in a fixed order and the first one that fires wins:
//
//  1. no hostname          -> unknown
//  2. exact allow-list hit -> safe
//  3. brand in subdomain   -> phishing
//  4. near-duplicate label -> phishing
//  5. heuristic score      -> phishing at or above threshold, else unknown
//
// Classification is pure: it reads only its arguments and the scorer's
// immutable configuration, so concurrent calls are safe.
package classifier

import (
	"strings"

	"github.com/haukened/linkscan/internal/scan/domain"
	"github.com/haukened/linkscan/internal/scan/services/extractor"
	"github.com/haukened/linkscan/internal/scan/services/scorer"
	"github.com/haukened/linkscan/internal/scan/services/similarity"
)

// Classifier is the decision engine. It holds no allow-list; callers pass the
// snapshot to classify against on every call.
type Classifier struct {
	scorer RiskScorer
}

// Options configures a Classifier.
type Options struct {
	// Scorer defaults to the calibrated default scorer when nil.
	Scorer RiskScorer
}

// New returns a Classifier using opts.Scorer for the heuristic rule.
func New(opts Options) *Classifier {
	s := opts.Scorer
	if s == nil {
		s = scorer.NewDefault()
	}
	return &Classifier{scorer: s}
}

// Classify evaluates rawURL against allow using the given thresholds.
// typoThreshold is clamped into [0, 1]. A nil allow-list is treated as empty.
func (c *Classifier) Classify(rawURL string, allow AllowList, typoThreshold, heuristicThreshold float64) domain.Decision {
	parts := extractor.Extract(rawURL)
	if parts.IsEmpty() {
		return domain.Decision{
			Verdict:   domain.VerdictUnknown,
			URL:       rawURL,
			Reason:    domain.ReasonNoHostname,
			Rule:      domain.RuleNoHostname,
			Threshold: heuristicThreshold,
		}
	}

	registrable := parts.Registrable()
	dec := domain.Decision{URL: rawURL, Registrable: registrable}

	var entries []string
	if allow != nil {
		entries = allow.Entries()
		if registrable != "" && allow.Contains(registrable) {
			dec.Verdict = domain.VerdictSafe
			dec.Rule = domain.RuleExactMatch
			dec.Reason = domain.ReasonKnownGood
			dec.MatchedEntry = registrable
			return dec
		}
	}

	labels := make([]string, len(entries))
	for i, legit := range entries {
		labels[i] = extractor.SecondLevelLabel(legit)
	}

	if i, ok := brandInSubdomain(parts, registrable, entries, labels); ok {
		dec.Verdict = domain.VerdictPhishing
		dec.Rule = domain.RuleBrandInSubdomain
		dec.Reason = domain.ReasonBrandInSubdomain
		dec.MatchedEntry = entries[i]
		return dec
	}

	if parts.Domain != "" {
		if m, ok := similarity.NearDuplicate(parts.Domain, labels, typoThreshold); ok {
			dec.Verdict = domain.VerdictPhishing
			dec.Rule = domain.RuleNearDuplicate
			dec.Reason = domain.ReasonNearDuplicate
			dec.MatchedEntry = entries[m.Index]
			dec.Similarity = m.Ratio
			return dec
		}
	}

	if parts.Domain != "" {
		if m, ok := similarity.BestMatch(parts.Domain, labels); ok && m.Ratio > 0 {
			dec.Closest = entries[m.Index]
			dec.ClosestSimilarity = m.Ratio
		}
	}

	score, breakdown := c.scorer.Score(rawURL)
	dec.Rule = domain.RuleHeuristic
	dec.Score = score
	dec.Threshold = heuristicThreshold
	dec.Breakdown = breakdown
	dec.Reason = domain.HeuristicReason(score, heuristicThreshold)
	if score >= heuristicThreshold {
		dec.Verdict = domain.VerdictPhishing
	} else {
		dec.Verdict = domain.VerdictUnknown
	}
	return dec
}

// brandInSubdomain returns the index of the first entry whose label appears
// inside the subdomain while the registrable domain differs from the entry.
func brandInSubdomain(parts domain.DomainParts, registrable string, entries, labels []string) (int, bool) {
	if parts.Subdomain == "" {
		return 0, false
	}
	for i, legit := range entries {
		if labels[i] == "" || registrable == legit {
			continue
		}
		if strings.Contains(parts.Subdomain, labels[i]) {
			return i, true
		}
	}
	return 0, false
}
