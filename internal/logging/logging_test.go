package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPreInitLoggerUsesConfiguredHandler(t *testing.T) {
	logger := L("reporter")

	var buf bytes.Buffer
	Init("text", "info", &buf)
	t.Cleanup(func() { Init("text", "warn", nil) })

	logger.Info("search complete", "count", 3)

	out := buf.String()
	if !strings.Contains(out, `msg="search complete"`) {
		t.Fatalf("expected search complete message, got: %s", out)
	}
	if !strings.Contains(out, "component=reporter") {
		t.Fatalf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "count=3") {
		t.Fatalf("expected count field, got: %s", out)
	}
}

func TestPreInitLoggerRespectsConfiguredLevel(t *testing.T) {
	logger := L("reporter")

	var buf bytes.Buffer
	Init("text", "warn", &buf)
	t.Cleanup(func() { Init("text", "warn", nil) })

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info log should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn log should be emitted: %s", out)
	}
}

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("JSON", "debug", &buf)
	t.Cleanup(func() { Init("text", "warn", nil) })

	L("wua").Debug("update session opened")

	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Fatalf("expected JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"component":"wua"`) {
		t.Fatalf("expected component in JSON output, got: %s", out)
	}
}

func TestInitSwitchesBetweenFormats(t *testing.T) {
	t.Cleanup(func() { Init("text", "warn", nil) })

	var text, json bytes.Buffer
	Init("text", "warn", &text)
	Init("json", "warn", &json)
	L("config").Warn("first")
	Init("text", "warn", &text)
	L("config").Warn("second")

	if !strings.Contains(json.String(), `"msg":"first"`) {
		t.Fatalf("expected JSON record, got: %s", json.String())
	}
	if !strings.Contains(text.String(), "msg=second") {
		t.Fatalf("expected text record after switching back, got: %s", text.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"bogus":   slog.LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := NewContext(context.Background(), custom)
	if FromContext(ctx) != custom {
		t.Fatal("expected logger stored in context")
	}
}
