// Package scanner drives the classifier for interactive and batch front ends.
// It owns the ambient concerns the pure classifier leaves out: allow-list
// snapshot lookup, memoization, bounded concurrency and logging.
package scanner

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// Scanner classifies URLs against the current allow-list snapshot, memoizing
// decisions per snapshot version. It is safe for concurrent use.
type Scanner struct {
	classifier         Classifier
	allowList          AllowListSource
	cache              VerdictCache
	logger             log.Logger
	workers            int
	typoThreshold      float64
	heuristicThreshold float64

	// lastVersion is the allow-list version seen by the previous scan.
	lastVersion atomic.Uint64
}

// Options configures a Scanner. Classifier and AllowList are required.
type Options struct {
	Classifier         Classifier
	AllowList          AllowListSource
	Cache              VerdictCache // optional
	Logger             log.Logger
	Workers            int // batch concurrency, at least 1
	TypoThreshold      float64
	HeuristicThreshold float64
}

// New validates opts and returns a Scanner. Workers below 1 become 1 and a
// nil Logger becomes a noop logger.
func New(opts Options) (*Scanner, error) {
	if opts.Classifier == nil {
		return nil, fmt.Errorf("scanner: classifier is required")
	}
	if opts.AllowList == nil {
		return nil, fmt.Errorf("scanner: allow-list source is required")
	}
	s := &Scanner{
		classifier:         opts.Classifier,
		allowList:          opts.AllowList,
		cache:              opts.Cache,
		logger:             opts.Logger,
		workers:            opts.Workers,
		typoThreshold:      opts.TypoThreshold,
		heuristicThreshold: opts.HeuristicThreshold,
	}
	if s.logger == nil {
		s.logger = log.NewNoopLogger()
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s, nil
}

// ScanOne classifies a single URL against the current allow-list.
func (s *Scanner) ScanOne(ctx context.Context, rawURL string) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return domain.Decision{}, err
	}
	allow, err := s.allowList()
	if err != nil {
		return domain.Decision{}, fmt.Errorf("load allow-list: %w", err)
	}
	s.observe(allow)
	return s.classify(rawURL, allow), nil
}

// Scan classifies urls concurrently and returns decisions in input order.
// All URLs are classified against the same allow-list snapshot.
func (s *Scanner) Scan(ctx context.Context, urls []string) ([]domain.Decision, error) {
	allow, err := s.allowList()
	if err != nil {
		return nil, fmt.Errorf("load allow-list: %w", err)
	}
	s.observe(allow)

	out := make([]domain.Decision, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, u := range urls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.classify(u, allow)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := Summarize(out)
	s.logger.Info(map[string]any{
		"total":    len(out),
		"safe":     sum.Safe,
		"phishing": sum.Phishing,
		"unknown":  sum.Unknown,
		"version":  allow.Version(),
	}, "scan complete")
	return out, nil
}

// observe purges the cache once per allow-list version change; entries keyed
// on the old version can never hit again.
func (s *Scanner) observe(allow AllowList) {
	v := allow.Version()
	prev := s.lastVersion.Swap(v)
	if prev == 0 || prev == v || s.cache == nil {
		return
	}
	s.cache.Purge()
	s.logger.Debug(map[string]any{"from": prev, "to": v}, "allow-list version changed, verdict cache purged")
}

func (s *Scanner) classify(rawURL string, allow AllowList) domain.Decision {
	var key string
	if s.cache != nil {
		key = cacheKey(rawURL, allow.Version(), s.typoThreshold, s.heuristicThreshold)
		if d, ok := s.cache.Get(key); ok {
			s.logger.Debug(map[string]any{"url": rawURL, "verdict": d.Verdict.String()}, "cached decision")
			return d
		}
	}

	d := s.classifier.Classify(rawURL, allow, s.typoThreshold, s.heuristicThreshold)
	s.logger.Debug(map[string]any{
		"url":         rawURL,
		"registrable": d.Registrable,
		"verdict":     d.Verdict.String(),
		"rule":        d.Rule.String(),
		"score":       d.Score,
	}, "classified")

	if s.cache != nil {
		s.cache.Put(key, d)
	}
	return d
}

// cacheKey covers everything a decision depends on: the URL, the allow-list
// version and both thresholds.
func cacheKey(rawURL string, allowVersion uint64, typoThreshold, heuristicThreshold float64) string {
	var b strings.Builder
	b.Grow(len(rawURL) + 48)
	b.WriteString(strconv.FormatUint(allowVersion, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(typoThreshold, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(heuristicThreshold, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(rawURL)
	return b.String()
}

// Summary counts decisions per verdict.
type Summary struct {
	Safe     int
	Phishing int
	Unknown  int
}

// Summarize counts decisions per verdict.
func Summarize(decisions []domain.Decision) Summary {
	var s Summary
	for _, d := range decisions {
		switch d.Verdict {
		case domain.VerdictSafe:
			s.Safe++
		case domain.VerdictPhishing:
			s.Phishing++
		default:
			s.Unknown++
		}
	}
	return s
}
