package log

import (
	"strings"
	"sync"
	"testing"
)

type captureOutput struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureOutput) Write(_ *Entry, formatted []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, string(formatted))
	return nil
}

func (c *captureOutput) Close() error { return nil }

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("debug"); err != nil || lvl != DebugLevel {
		t.Fatalf("debug: %v %v", lvl, err)
	}
	if lvl, err := ParseLevel(""); err != nil || lvl != InfoLevel {
		t.Fatalf("empty: %v %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelGating(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithLevel(WarnLevel), WithOutput(out))
	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("visible")
	if len(out.lines) != 1 || !strings.Contains(out.lines[0], "visible") {
		t.Fatalf("unexpected output: %v", out.lines)
	}
}

func TestWithFieldsAppear(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithOutput(out)).With(Component("hub"))
	l.Info("broadcast", Str("channel", "queue:bma-training"), Int("subs", 2))
	if len(out.lines) != 1 {
		t.Fatalf("expected one line, got %d", len(out.lines))
	}
	line := out.lines[0]
	for _, want := range []string{"component=hub", "channel=queue:bma-training", "subs=2"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %q", want, line)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithFormatter(&JSONFormatter{}), WithOutput(out))
	l.Info("hello", Str("team", "tmlt"))
	if len(out.lines) != 1 {
		t.Fatalf("expected one line, got %d", len(out.lines))
	}
	if !strings.Contains(out.lines[0], `"team":"tmlt"`) || !strings.Contains(out.lines[0], `"msg":"hello"`) {
		t.Fatalf("unexpected json: %q", out.lines[0])
	}
}

func TestApplyConfigRejectsUnknownFormat(t *testing.T) {
	if _, err := ApplyConfig(&Config{Level: "info", Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
