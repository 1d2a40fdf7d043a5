package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("built tree", "roots", 2)

	out := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(out) {
		t.Errorf("output %q should start with an HH:MM:SS.00 timestamp", out)
	}
	if !strings.Contains(out, "built tree") || !strings.Contains(out, "roots=2") {
		t.Errorf("output %q missing message or fields", out)
	}
}

func TestNewLoggerVerbose(t *testing.T) {
	tests := []struct {
		level log.Level
		want  bool
	}{
		{LogInfo, false},
		{LogDebug, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		newLogger(&buf, tt.level).Debug("artifact cache miss", "format", "json")
		if got := buf.Len() > 0; got != tt.want {
			t.Errorf("level %v: debug logged = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Converted results.nq", "statements", 12, "branches", 4)

	out := buf.String()
	for _, want := range []string{"Converted results.nq", "statements=12", "branches=4", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgressDoneQuietAtWarn(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Converted mongo:people")
	if buf.Len() != 0 {
		t.Errorf("progress logged %q above its level", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext should return the attached logger")
	}

	// Without the root command's logger nothing reaches the default logger.
	if got := loggerFromContext(context.Background()); got != quiet || got == log.Default() {
		t.Error("loggerFromContext without a logger should discard")
	}
}
