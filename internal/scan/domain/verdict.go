package domain

import (
	"fmt"
	"strings"
)

// Verdict is the terminal classification of a URL.
type Verdict uint8

const (
	// VerdictUnknown means no rule fired and the heuristic score stayed below threshold.
	VerdictUnknown Verdict = iota
	// VerdictSafe means the registrable domain is on the allow-list.
	VerdictSafe
	// VerdictPhishing means a domain-level rule or the heuristic score fired.
	VerdictPhishing
)

// String returns a stable string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictUnknown:
		return "unknown"
	case VerdictSafe:
		return "safe"
	case VerdictPhishing:
		return "phishing"
	default:
		return fmt.Sprintf("Verdict(%d)", v)
	}
}

// ParseVerdict converts a string into a Verdict (case-insensitive).
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unknown":
		return VerdictUnknown, nil
	case "safe":
		return VerdictSafe, nil
	case "phishing":
		return VerdictPhishing, nil
	default:
		return 0, fmt.Errorf("unsupported Verdict: %q", s)
	}
}

// Rule identifies which step of the decision pipeline produced a Decision.
//
// Rules are evaluated in declaration order after RuleNoHostname; the first
// one that fires wins.
type Rule uint8

const (
	RuleNoHostname Rule = iota
	RuleExactMatch
	RuleBrandInSubdomain
	RuleNearDuplicate
	RuleHeuristic
)

// String returns a stable string representation of the rule.
func (r Rule) String() string {
	switch r {
	case RuleNoHostname:
		return "no_hostname"
	case RuleExactMatch:
		return "exact_match"
	case RuleBrandInSubdomain:
		return "brand_in_subdomain"
	case RuleNearDuplicate:
		return "near_duplicate"
	case RuleHeuristic:
		return "heuristic"
	default:
		return fmt.Sprintf("Rule(%d)", r)
	}
}
