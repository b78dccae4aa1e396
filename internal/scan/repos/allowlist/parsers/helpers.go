package parsers

import (
	"strings"
	"time"
	"unicode"

	logpkg "github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/common/utils"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// isValidHostname checks whether name is usable as an allow-list entry:
//   - total length at most 253 characters
//   - at least two labels (e.g. example.com)
//   - every label 1 to 63 letters, digits, hyphens or underscores
//   - first character a letter or digit
func isValidHostname(name string) bool {
	if len(name) > 253 {
		return false
	}
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) > 63 || len(label) == 0 {
			return false
		}
		for _, r := range label {
			if !isLabelRune(r) {
				return false
			}
		}
	}
	r := []rune(labels[0])
	return unicode.IsLetter(r[0]) || unicode.IsDigit(r[0])
}

func isLabelRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// normalizeName strips wildcard markers, canonicalizes and reduces the name
// to its registrable domain ("*.www.google.com" -> "google.com").
func normalizeName(raw string) string {
	name, _ := reduceName(raw)
	return name
}

// reduceName is normalizeName that also returns the registrable domain the
// full suffix list would give. The two differ for hosts under a private
// suffix, where the entry widens to the ICANN parent.
func reduceName(raw string) (name, listed string) {
	host := strings.TrimSpace(raw)
	host = strings.TrimPrefix(host, "*.")
	host = strings.TrimPrefix(host, ".")
	host = utils.CanonicalHostname(host)
	if !isValidHostname(host) || utils.IsIPLiteral(host) {
		return "", ""
	}
	return utils.RegistrableDomain(host), utils.ListedRegistrableDomain(host)
}

// stripLineBOM removes a UTF-8 byte order mark at the start of a line.
func stripLineBOM(line string) string {
	return strings.TrimPrefix(line, "\uFEFF")
}

// classifyLine reports whether a line is blank or a whole-line comment.
func classifyLine(line string) (isEmpty, isComment bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true, false
	}
	return false, strings.HasPrefix(trimmed, "#")
}

// stripInlineComment drops everything from the first '#'.
func stripInlineComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// collector de-duplicates entries by name, preserving first-seen order.
type collector struct {
	source string
	now    time.Time
	logger logpkg.Logger
	seen   map[string]struct{}
	out    []domain.AllowEntry
}

func newCollector(source string, logger logpkg.Logger, now time.Time) *collector {
	return &collector{
		source: source,
		now:    now,
		logger: logger,
		seen:   make(map[string]struct{}),
		out:    make([]domain.AllowEntry, 0, 64),
	}
}

// add normalizes raw and appends it when valid and unseen.
func (c *collector) add(line int, raw string) {
	name, listed := reduceName(raw)
	if name == "" {
		c.logger.Debug(map[string]any{"line": line, "raw": raw}, "skip_invalid_name")
		return
	}
	if _, ok := c.seen[name]; ok {
		c.logger.Debug(map[string]any{"line": line, "name": name}, "skip_duplicate")
		return
	}
	e, err := domain.NewAllowEntry(name, c.source, c.now)
	if err != nil {
		c.logger.Warn(map[string]any{"source": c.source, "line": line, "name": name, "error": err.Error()}, "allow-list entry rejected")
		return
	}
	if listed != "" && listed != name {
		c.logger.Warn(map[string]any{"source": c.source, "line": line, "entry": listed, "trusted": name}, "allow-list entry widened to its ICANN registrable domain")
	}
	c.seen[name] = struct{}{}
	c.out = append(c.out, e)
	c.logger.Debug(map[string]any{"line": line, "name": name}, "emit_entry")
}

// FromNames builds entries from inline configuration values.
func FromNames(names []string, source string, logger logpkg.Logger, now time.Time) []domain.AllowEntry {
	c := newCollector(source, logger, now)
	for i, n := range names {
		c.add(i+1, n)
	}
	return c.out
}
