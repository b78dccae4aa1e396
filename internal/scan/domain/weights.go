package domain

// Weights holds the per-signal contributions to the risk score.
// The zero value disables every signal.
type Weights struct {
	Credentials     float64 // user:pass@ or any '@' in the URL
	IPHost          float64 // literal IPv4/IPv6 host
	DeepSubdomain   float64 // >= 4 host labels
	DeeperSubdomain float64 // >= 6 host labels, on top of DeepSubdomain
	Hyphen          float64 // per hyphen in the domain label
	Digit           float64 // any digit in the domain label
	Keyword         float64 // per distinct keyword in host+path
	LongLabel       float64 // domain label longer than LongLabelLen
	LongURL         float64 // URL longer than LongURLLen
	QueryParams     float64 // at least QueryParamSeparators '&' in the query
}

// Structural limits used by the scorer predicates.
const (
	DeepSubdomainLabels   = 4
	DeeperSubdomainLabels = 6
	LongLabelLen          = 20
	LongURLLen            = 200
	QueryParamSeparators  = 4
)

// DefaultWeights returns the calibrated default weights.
func DefaultWeights() Weights {
	return Weights{
		Credentials:     2.0,
		IPHost:          2.5,
		DeepSubdomain:   1.0,
		DeeperSubdomain: 1.0,
		Hyphen:          0.8,
		Digit:           0.8,
		Keyword:         1.5,
		LongLabel:       0.8,
		LongURL:         0.8,
		QueryParams:     0.5,
	}
}

// DefaultKeywords returns a fresh copy of the default suspicious keywords.
func DefaultKeywords() []string {
	return []string{"secure", "account", "update", "login", "verify", "confirm", "bank", "reset"}
}

// Default decision thresholds.
const (
	DefaultTypoThreshold      = 0.85
	DefaultHeuristicThreshold = 2.0
)
