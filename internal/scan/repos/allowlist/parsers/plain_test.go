package parsers

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/domain"
)

func TestParsePlainList_Basics(t *testing.T) {
	input := "\uFEFF# comment at top\n" +
		"Google.COM   \n" +
		"google.com.#inline comment\n" +
		"\n" +
		"\twww.YouTube.com.\n" +
		"*.facebook.com\n" +
		".example.co.uk\n" +
		"10.0.0.1\n" +
		"co.uk\n" +
		"localhost\n" +
		"mail.google.com   # duplicate after reduction\n"

	now := time.Unix(1723550000, 0)
	got, err := ParsePlainList(bytes.NewBufferString(input), "test-source", log.NewNoopLogger(), now)
	if err != nil {
		t.Fatalf("ParsePlainList returned error: %v", err)
	}

	want := []string{"google.com", "youtube.com", "facebook.com", "example.co.uk"}
	names := domain.EntryNames(got)
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entry[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	for i, e := range got {
		if e.Source != "test-source" {
			t.Fatalf("entry[%d].Source = %q, want %q", i, e.Source, "test-source")
		}
		if !e.AddedAt.Equal(now) {
			t.Fatalf("entry[%d].AddedAt = %v, want %v", i, e.AddedAt, now)
		}
	}
}

func TestParsePlainList_EmptyAndCommentsOnly(t *testing.T) {
	got, err := ParsePlainList(bytes.NewBufferString("\n# only comments\n   # another\n\n"), "s", log.NewNoopLogger(), time.Now())
	if err != nil {
		t.Fatalf("ParsePlainList returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 entries, got %d", len(got))
	}
}

func TestParsePlainList_ConstructorErrorsAreSkipped(t *testing.T) {
	got, err := ParsePlainList(bytes.NewBufferString("google.com\n"), "", log.NewNoopLogger(), time.Now())
	if err != nil {
		t.Fatalf("ParsePlainList returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected entries with empty source to be skipped, got %d", len(got))
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestParsePlainList_ScannerError(t *testing.T) {
	if _, err := ParsePlainList(errReader{}, "s", log.NewNoopLogger(), time.Now()); err == nil {
		t.Fatal("expected scanner error")
	}
}

func TestFromNames(t *testing.T) {
	got := FromNames([]string{"examples.com", " Google.com ", "", "youtube.com", "google.com"}, "config", log.NewNoopLogger(), time.Now())
	names := domain.EntryNames(got)
	if len(names) != 3 || names[0] != "examples.com" || names[1] != "google.com" || names[2] != "youtube.com" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"google.com":         "google.com",
		"*.api.google.com":   "google.com",
		".bbc.co.uk":         "bbc.co.uk",
		"user.github.io":     "github.io",
		"bad..name":          "",
		"-leading.com":       "",
		"192.168.0.1":        "",
		"single":             "",
		"https://google.com": "",
	}
	for in, want := range tests {
		if got := normalizeName(in); got != want {
			t.Errorf("normalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
