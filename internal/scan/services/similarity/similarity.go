// Package similarity scores how alike two domain labels are.
package similarity

import (
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Ratio returns 1 - levenshtein(a, b) / max(len(a), len(b)), measured in runes.
// Identical strings (including two empty ones) score 1.0 and the ratio is
// symmetric in its arguments.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	d := fuzzy.LevenshteinDistance(a, b)
	return 1.0 - float64(d)/float64(longest)
}

// ClampThreshold forces threshold into [0, 1]. Values outside the range are
// a caller error; they are clamped rather than rejected.
func ClampThreshold(threshold float64) float64 {
	switch {
	case threshold != threshold: // NaN
		return 1.0
	case threshold < 0:
		return 0
	case threshold > 1:
		return 1
	default:
		return threshold
	}
}

// Match is the best reference found by BestMatch.
type Match struct {
	Index     int // position of Reference in the input slice
	Reference string
	Ratio     float64
}

// BestMatch returns the first reference with the highest ratio to candidate.
// ok is false when references is empty.
func BestMatch(candidate string, references []string) (m Match, ok bool) {
	for i, ref := range references {
		r := Ratio(candidate, ref)
		if !ok || r > m.Ratio {
			m, ok = Match{Index: i, Reference: ref, Ratio: r}, true
		}
	}
	return m, ok
}

// IsNearDuplicate reports whether candidate scores at least threshold against
// any reference. References are compared as given; callers pass the
// second-level labels of their allow-list entries.
func IsNearDuplicate(candidate string, references []string, threshold float64) bool {
	_, ok := NearDuplicate(candidate, references, threshold)
	return ok
}

// NearDuplicate is IsNearDuplicate returning the first reference that
// reached the threshold.
func NearDuplicate(candidate string, references []string, threshold float64) (Match, bool) {
	threshold = ClampThreshold(threshold)
	for i, ref := range references {
		if r := Ratio(candidate, ref); r >= threshold {
			return Match{Index: i, Reference: ref, Ratio: r}, true
		}
	}
	return Match{}, false
}
