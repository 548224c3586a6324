package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("expected info to be suppressed without verbose")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("expected warning with attributes, got %q", out)
	}
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("details")

	if !strings.Contains(buf.String(), "details") {
		t.Fatal("expected debug output with verbose")
	}
}
