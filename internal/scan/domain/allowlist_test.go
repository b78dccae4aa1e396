package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestNewAllowList_NormalizesAndKeepsOrder(t *testing.T) {
	l := NewAllowList(" Google.com ", "facebook.com.", "", "   ", "google.com", "youtube.com")
	want := []string{"google.com", "facebook.com", "youtube.com"}
	if got := l.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
	if !l.Contains("facebook.com") || l.Contains("Facebook.com") || l.Contains("") {
		t.Error("Contains() mismatch")
	}
}

func TestAllowList_NilSafe(t *testing.T) {
	var l *AllowList
	if l.Contains("a.com") || l.Len() != 0 || l.Entries() != nil {
		t.Error("nil AllowList should behave as empty")
	}
}

func TestNewAllowEntry(t *testing.T) {
	now := time.Unix(1723550000, 0)
	e, err := NewAllowEntry(" google.com ", " config ", now)
	if err != nil {
		t.Fatalf("NewAllowEntry error: %v", err)
	}
	if e.Name != "google.com" || e.Source != "config" || !e.AddedAt.Equal(now) {
		t.Errorf("unexpected entry: %+v", e)
	}

	bad := []struct {
		name, source string
		at           time.Time
	}{
		{"", "s", now},
		{"google.com", "", now},
		{"google.com", "s", time.Time{}},
		{"https://google.com", "s", now},
		{"google.com/path", "s", now},
		{"user@google.com", "s", now},
	}
	for _, b := range bad {
		if _, err := NewAllowEntry(b.name, b.source, b.at); err == nil {
			t.Errorf("expected error for %+v", b)
		}
	}
}

func TestEntryNames(t *testing.T) {
	now := time.Now()
	entries := []AllowEntry{{Name: "a.com", Source: "s", AddedAt: now}, {Name: "b.com", Source: "s", AddedAt: now}}
	if got := EntryNames(entries); !reflect.DeepEqual(got, []string{"a.com", "b.com"}) {
		t.Errorf("EntryNames() = %v", got)
	}
}
