package parsers

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	logpkg "github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// yamlAllowList is the mapping form of a YAML allow-list file.
type yamlAllowList struct {
	Domains []string `yaml:"domains"`
}

// ParseYAML parses a YAML allow-list. Both a mapping with a "domains" key and
// a bare top-level sequence are accepted:
//
//	domains:
//	  - google.com
//	  - facebook.com
//
// Names go through the same normalization as the plain format.
func ParseYAML(r io.Reader, source string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	logger.Debug(map[string]any{"source": source}, "parse_yaml_start")

	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.AllowEntry{}, nil
		}
		return nil, fmt.Errorf("decode yaml allow-list %s: %w", source, err)
	}

	var names []string
	doc := &node
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&names); err != nil {
			return nil, fmt.Errorf("decode yaml allow-list %s: %w", source, err)
		}
	case yaml.MappingNode:
		var m yamlAllowList
		if err := doc.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode yaml allow-list %s: %w", source, err)
		}
		names = m.Domains
	default:
		return nil, fmt.Errorf("yaml allow-list %s: expected a sequence or a mapping with domains", source)
	}

	out := FromNames(names, source, logger, now)
	logger.Debug(map[string]any{"source": source, "count": len(out)}, "parse_yaml_done")
	return out, nil
}
