package parsers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"

	logpkg "github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// domainsKey holds the list of names in JSON and TOML allow-lists.
const domainsKey = "domains"

// ParseJSON parses {"domains": ["google.com", ...]}.
func ParseJSON(r io.Reader, source string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	return parseStructured(r, json.Parser(), "json", source, logger, now)
}

// ParseTOML parses domains = ["google.com", ...].
func ParseTOML(r io.Reader, source string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	return parseStructured(r, toml.Parser(), "toml", source, logger, now)
}

func parseStructured(r io.Reader, parser koanf.Parser, kind, source string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	logger.Debug(map[string]any{"source": source, "format": kind}, "parse_structured_start")

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s allow-list %s: %w", kind, source, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return []domain.AllowEntry{}, nil
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(b), parser); err != nil {
		return nil, fmt.Errorf("decode %s allow-list %s: %w", kind, source, err)
	}

	out := FromNames(toStringValues(k.Get(domainsKey)), source, logger, now)
	logger.Debug(map[string]any{"source": source, "format": kind, "count": len(out)}, "parse_structured_done")
	return out, nil
}

// toStringValues accepts a single string or a list; non-string elements
// are dropped.
func toStringValues(val any) []string {
	switch v := val.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
