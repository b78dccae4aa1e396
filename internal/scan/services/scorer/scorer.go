// Package scorer computes the structural risk score of a URL.
package scorer

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/haukened/linkscan/internal/scan/common/utils"
	"github.com/haukened/linkscan/internal/scan/domain"
	"github.com/haukened/linkscan/internal/scan/services/extractor"
)

// Scorer adds up fixed weights for independent structural signals.
// A Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	weights  domain.Weights
	keywords []string
}

// Options configures a Scorer.
type Options struct {
	Weights  domain.Weights
	Keywords []string
}

// New returns a Scorer. Keywords are lowercased and de-duplicated.
func New(opts Options) *Scorer {
	seen := make(map[string]struct{}, len(opts.Keywords))
	kws := make([]string, 0, len(opts.Keywords))
	for _, k := range opts.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kws = append(kws, k)
	}
	return &Scorer{weights: opts.Weights, keywords: kws}
}

// NewDefault returns a Scorer with the calibrated default weights and keywords.
func NewDefault() *Scorer {
	return New(Options{Weights: domain.DefaultWeights(), Keywords: domain.DefaultKeywords()})
}

// Score returns the risk score of rawURL and the signals that fired, in
// evaluation order. When no hostname can be determined the score is 0 and
// the breakdown is empty.
func (s *Scorer) Score(rawURL string) (float64, domain.ScoreBreakdown) {
	u, err := extractor.Parse(rawURL)
	if err != nil {
		return 0, nil
	}
	host := utils.CanonicalHostname(u.Hostname())
	if host == "" {
		return 0, nil
	}
	_, label, _ := utils.SplitHost(host)

	var b domain.ScoreBreakdown
	add := func(name string, w float64) {
		if w != 0 {
			b = append(b, domain.SignalHit{Name: name, Weight: w})
		}
	}

	if hasCredentials(u, rawURL) {
		add(domain.SignalCredentials, s.weights.Credentials)
	}
	if utils.IsIPLiteral(host) {
		add(domain.SignalIPHost, s.weights.IPHost)
	}

	labels := strings.Count(host, ".") + 1
	if labels >= domain.DeepSubdomainLabels {
		add(domain.SignalDeepSubdomain, s.weights.DeepSubdomain)
	}
	if labels >= domain.DeeperSubdomainLabels {
		add(domain.SignalDeeperSubdomain, s.weights.DeeperSubdomain)
	}

	if n := strings.Count(label, "-"); n > 0 {
		add(domain.SignalHyphens, s.weights.Hyphen*float64(n))
	}
	if strings.IndexFunc(label, unicode.IsDigit) >= 0 {
		add(domain.SignalDigits, s.weights.Digit)
	}

	hostAndPath := host + strings.ToLower(u.EscapedPath())
	for _, kw := range s.keywords {
		if strings.Contains(hostAndPath, kw) {
			add(domain.SignalKeywordPrefix+kw, s.weights.Keyword)
		}
	}

	if utf8.RuneCountInString(label) > domain.LongLabelLen {
		add(domain.SignalLongLabel, s.weights.LongLabel)
	}
	if utf8.RuneCountInString(rawURL) > domain.LongURLLen {
		add(domain.SignalLongURL, s.weights.LongURL)
	}
	if strings.Count(u.RawQuery, "&") >= domain.QueryParamSeparators {
		add(domain.SignalQueryParams, s.weights.QueryParams)
	}

	return b.Total(), b
}

// hasCredentials reports a userinfo component or any '@' in the raw string.
func hasCredentials(u *url.URL, raw string) bool {
	return u.User != nil || strings.Contains(raw, "@")
}

// Keywords returns the normalized keyword set.
func (s *Scorer) Keywords() []string {
	out := make([]string, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// Weights returns the configured weights.
func (s *Scorer) Weights() domain.Weights { return s.weights }
