package parsers

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	logpkg "github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// Format identifies an allow-list file syntax.
type Format string

const (
	FormatPlain Format = "plain"
	FormatHosts Format = "hosts"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTOML  Format = "toml"
)

// ErrUnknownFormat is returned for an unsupported Format.
var ErrUnknownFormat = errors.New("unknown allow-list format")

// FormatFor picks a Format from a file name: .yaml/.yml is YAML, .json and
// .toml are structured lists, a file named "hosts" or ending in .hosts is a
// hosts file, anything else is plain.
func FormatFor(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return FormatYAML
	case strings.HasSuffix(base, ".json"):
		return FormatJSON
	case strings.HasSuffix(base, ".toml"):
		return FormatTOML
	case base == "hosts", strings.HasSuffix(base, ".hosts"):
		return FormatHosts
	default:
		return FormatPlain
	}
}

// Parse dispatches to the parser for format.
func Parse(format Format, r io.Reader, source string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	switch format {
	case FormatPlain:
		return ParsePlainList(r, source, logger, now)
	case FormatHosts:
		return ParseHostsFile(r, source, logger, now)
	case FormatYAML:
		return ParseYAML(r, source, logger, now)
	case FormatJSON:
		return ParseJSON(r, source, logger, now)
	case FormatTOML:
		return ParseTOML(r, source, logger, now)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseFile opens path and parses it with the format implied by its name.
// The path is used as the entry source.
func ParseFile(path string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open allow-list %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Parse(FormatFor(path), f, path, logger, now)
	if err != nil {
		return nil, fmt.Errorf("parse allow-list %s: %w", path, err)
	}
	return entries, nil
}

// directoryExts are the file names picked up when walking a directory.
// Files with other extensions are skipped.
var directoryExts = map[string]bool{
	".txt": true, ".list": true, ".hosts": true,
	".yaml": true, ".yml": true, ".json": true, ".toml": true,
}

// ParseDirectory walks dir and parses every allow-list file in it, in
// lexical order. Any file that fails to parse fails the whole directory.
func ParseDirectory(dir string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	var out []domain.AllowEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.ToLower(d.Name())
		if name != "hosts" && !directoryExts[filepath.Ext(name)] {
			logger.Debug(map[string]any{"path": path}, "skip_unsupported_file")
			return nil
		}
		entries, err := ParseFile(path, logger, now)
		if err != nil {
			return err
		}
		out = append(out, entries...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParsePath parses a single file or, for a directory, every supported file
// beneath it.
func ParsePath(path string, logger logpkg.Logger, now time.Time) ([]domain.AllowEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open allow-list %s: %w", path, err)
	}
	if info.IsDir() {
		return ParseDirectory(path, logger, now)
	}
	return ParseFile(path, logger, now)
}
