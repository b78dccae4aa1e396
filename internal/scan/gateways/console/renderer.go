package console

import (
	"fmt"
	"io"

	"github.com/haukened/linkscan/internal/scan/domain"
)

// Renderer writes decisions as one line each, optionally followed by the
// score breakdown.
type Renderer struct {
	w       io.Writer
	verbose bool
}

// Messages printed around a batch of decisions.
const (
	NoURLsMessage = "No URLs entered. Exiting."
	ResultsHeader = "--- SCANNING RESULTS ---"
)

// NewRenderer writes to w; verbose adds the score breakdown and the closest
// known-good entry under heuristic decisions.
func NewRenderer(w io.Writer, verbose bool) *Renderer {
	return &Renderer{w: w, verbose: verbose}
}

// Tag returns the fixed-width label printed before a URL.
func Tag(v domain.Verdict) string {
	switch v {
	case domain.VerdictSafe:
		return "[SAFE]   "
	case domain.VerdictPhishing:
		return "[PHISH]  "
	default:
		return "[UNKNOWN] "
	}
}

// Render writes one decision.
func (r *Renderer) Render(d domain.Decision) error {
	line := Tag(d.Verdict) + d.URL + " -> " + d.Reason
	switch d.Rule {
	case domain.RuleBrandInSubdomain:
		line += fmt.Sprintf(" (brand of %s, registrable %s)", d.MatchedEntry, d.Registrable)
	case domain.RuleNearDuplicate:
		line += fmt.Sprintf(" (%s ~ %s, similarity %.2f)", d.Registrable, d.MatchedEntry, d.Similarity)
	case domain.RuleExactMatch:
		line += fmt.Sprintf(" (%s)", d.Registrable)
	}
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return err
	}
	if !r.verbose {
		return nil
	}
	for _, h := range d.Breakdown {
		if _, err := fmt.Fprintf(r.w, "    + %-20s %.2f\n", h.Name, h.Weight); err != nil {
			return err
		}
	}
	if d.Closest != "" {
		if _, err := fmt.Fprintf(r.w, "    ~ closest known-good %s (similarity %.2f)\n", d.Closest, d.ClosestSimilarity); err != nil {
			return err
		}
	}
	return nil
}

// RenderEmpty reports that there was nothing to scan.
func (r *Renderer) RenderEmpty() error {
	_, err := fmt.Fprintln(r.w, NoURLsMessage)
	return err
}

// RenderHeader opens a block of results.
func (r *Renderer) RenderHeader() error {
	_, err := fmt.Fprintf(r.w, "\n%s\n\n", ResultsHeader)
	return err
}

// RenderAll writes every decision in order.
func (r *Renderer) RenderAll(decisions []domain.Decision) error {
	for _, d := range decisions {
		if err := r.Render(d); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary writes verdict totals.
func (r *Renderer) RenderSummary(safe, phishing, unknown int) error {
	_, err := fmt.Fprintf(r.w, "\n%d scanned: %d safe, %d phishing, %d unknown\n", safe+phishing+unknown, safe, phishing, unknown)
	return err
}
