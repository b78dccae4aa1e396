package log

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) Info(_ map[string]any, msg string) {
	l.entries = append(l.entries, "INFO:"+msg)
}
func (l *recordingLogger) Error(_ map[string]any, msg string) {
	l.entries = append(l.entries, "ERROR:"+msg)
}
func (l *recordingLogger) Debug(_ map[string]any, msg string) {
	l.entries = append(l.entries, "DEBUG:"+msg)
}
func (l *recordingLogger) Warn(_ map[string]any, msg string) {
	l.entries = append(l.entries, "WARN:"+msg)
}
func (l *recordingLogger) Panic(_ map[string]any, msg string) {
	l.entries = append(l.entries, "PANIC:"+msg)
}
func (l *recordingLogger) Fatal(_ map[string]any, msg string) {
	l.entries = append(l.entries, "FATAL:"+msg)
}

func TestZapLogger_Levels(t *testing.T) {
	l := newZapLogger(true, zapcore.DebugLevel)
	l.Debug(map[string]any{"url": "http://example.com", "score": 1.5}, "scored")
	l.Info(nil, "info")
	l.Warn(nil, "warn")
	l.Error(nil, "error")

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic, but none occurred")
		}
	}()
	l.Panic(nil, "panic")
}

func TestGlobalForwarding(t *testing.T) {
	orig := GetLogger()
	defer SetLogger(orig)

	rec := &recordingLogger{}
	SetLogger(rec)

	Info(nil, "a")
	Error(nil, "b")
	Debug(nil, "c")
	Warn(nil, "d")
	Panic(nil, "e")
	Fatal(nil, "f")

	expected := []string{"INFO:a", "ERROR:b", "DEBUG:c", "WARN:d", "PANIC:e", "FATAL:f"}
	if len(rec.entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(rec.entries))
	}
	for i, want := range expected {
		if rec.entries[i] != want {
			t.Errorf("entry[%d] = %q, want %q", i, rec.entries[i], want)
		}
	}
}

func TestConfigure(t *testing.T) {
	orig := GetLogger()
	defer SetLogger(orig)

	for _, tc := range []struct {
		env, level string
		wantErr    bool
	}{
		{"dev", "debug", false},
		{"prod", "info", false},
		{"prod", "WARN", false},
		{"dev", "notalevel", true},
	} {
		err := Configure(tc.env, tc.level)
		if (err != nil) != tc.wantErr {
			t.Errorf("Configure(%q, %q) err=%v, wantErr=%v", tc.env, tc.level, err, tc.wantErr)
		}
	}
}

func TestZapFields_SortedByKey(t *testing.T) {
	fields := zapFields(map[string]any{"b": 2, "a": 1, "c": 3})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	for i, want := range []string{"a", "b", "c"} {
		if fields[i].Key != want {
			t.Errorf("field[%d].Key = %q, want %q", i, fields[i].Key, want)
		}
	}
	if got := zapFields(nil); len(got) != 0 {
		t.Errorf("expected no fields for nil map, got %d", len(got))
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Debug(nil, "x")
	l.Info(nil, "x")
	l.Warn(nil, "x")
	l.Error(nil, "x")
	l.Panic(nil, "x")
	l.Fatal(nil, "x")
}
