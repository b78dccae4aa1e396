package parsers

import (
	"bufio"
	"io"
	"strings"
	"time"

	logpkg "github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// ParsePlainList parses a newline-delimited list of domains into AllowEntry values.
//
// Behavior:
// - Supports comments starting with '#' (inline or whole-line)
// - Accepts "*." and "." prefixes and subdomains; every name is reduced to its registrable domain
// - Skips empty lines, IP literals and invalid names
// - De-duplicates by name while preserving first-seen order
func ParsePlainList(r io.Reader, source string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	scanner := bufio.NewScanner(r)
	c := newCollector(source, logger, now)

	logger.Debug(map[string]any{"source": source}, "parse_plain_list_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripLineBOM(scanner.Text())
		if isEmpty, isComment := classifyLine(line); isEmpty || isComment {
			continue
		}
		s := strings.TrimSpace(stripInlineComment(line))
		if s == "" {
			continue
		}
		c.add(lineNum, s)
	}

	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_plain_list_scan_error")
		return nil, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(c.out)}, "parse_plain_list_done")
	return c.out, nil
}
