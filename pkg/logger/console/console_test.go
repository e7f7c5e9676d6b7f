package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(ConsoleLoggerParams{Output: &buf})

	c.Debug("hidden")
	c.Info("shown", "node", "sun")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message printed at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "node=sun") {
		t.Errorf("info message missing: %q", out)
	}

	buf.Reset()
	d := NewConsoleLogger(ConsoleLoggerParams{Debug: true, Output: &buf})
	d.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug message missing at debug level: %q", buf.String())
	}
}
