package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestLogger_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "animal-adoption", Env: "test", Output: &buf})
	l.(*stdLogger).now = fixedNow

	l.With(Fields{"module": "animals"}).Info("hello", Fields{"count": 2, "error": errors.New("boom")})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"level":  "info",
		"msg":    "hello",
		"app":    "animal-adoption",
		"env":    "test",
		"module": "animals",
		"error":  "boom",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: expected %v, got %v", k, v, got[k])
		}
	}
	if got["count"] != float64(2) {
		t.Fatalf("count: expected 2, got %v", got["count"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Debug("d", nil)
	l.Info("i", nil)
	l.Warn("w", nil)
	l.Error("e", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "level=warn") || !strings.Contains(lines[1], "level=error") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestLogger_TextIsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Output: &buf})
	l.(*stdLogger).now = fixedNow

	l.Debug("x", Fields{"b": 1, "a": 2})

	want := "a=2 b=1 level=debug msg=x ts=2025-03-01T12:00:00Z\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestLogger_WithDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	root := New(Options{Output: &buf})

	_ = root.With(Fields{"module": "adoptions"})
	root.Info("plain", nil)

	if strings.Contains(buf.String(), "module=") {
		t.Fatalf("child fields leaked into parent: %q", buf.String())
	}
}

func TestParse(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info || ParseLevel("debug") != Debug {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}
