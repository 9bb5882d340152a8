// ABOUTME: Tests for leveled logging
// ABOUTME: Covers level filtering and overrides
package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	SetLevel(LevelWarn)
	defer SetLevel(LevelInfo)

	Debugf("debug message")
	Infof("info message")
	Warnf("warn message")
	Errorf("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn level were logged: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn/error messages missing: %q", out)
	}
}

func TestLevelPrefixes(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	SetLevel(LevelDebug)
	defer SetLevel(LevelInfo)

	Debugf("x")
	Warnf("y")

	out := buf.String()
	if !strings.Contains(out, "[DEBUG]") || !strings.Contains(out, "[WARN]") {
		t.Errorf("expected level prefixes in output: %q", out)
	}
}
