package domain

// Signal names reported in a ScoreBreakdown.
const (
	SignalCredentials     = "credentials"
	SignalIPHost          = "ip_host"
	SignalDeepSubdomain   = "deep_subdomain"
	SignalDeeperSubdomain = "deeper_subdomain"
	SignalHyphens         = "hyphens"
	SignalDigits          = "digits"
	SignalKeywordPrefix   = "keyword:"
	SignalLongLabel       = "long_label"
	SignalLongURL         = "long_url"
	SignalQueryParams     = "query_params"
)

// SignalHit is one fired signal and the weight it contributed.
type SignalHit struct {
	Name   string
	Weight float64
}

// ScoreBreakdown lists fired signals in evaluation order.
// The sum of weights equals the risk score.
type ScoreBreakdown []SignalHit

// Total sums the contributed weights in order.
func (b ScoreBreakdown) Total() float64 {
	var total float64
	for _, h := range b {
		total += h.Weight
	}
	return total
}

// Has reports whether a signal with the given name fired.
func (b ScoreBreakdown) Has(name string) bool {
	for _, h := range b {
		if h.Name == name {
			return true
		}
	}
	return false
}

// Names returns the fired signal names in order.
func (b ScoreBreakdown) Names() []string {
	out := make([]string, len(b))
	for i, h := range b {
		out[i] = h.Name
	}
	return out
}
