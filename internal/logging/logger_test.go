package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("hidden")
	l.Info("shown", "direction", "right")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written without verbose: %s", out)
	}
	if !strings.Contains(out, "INF") || !strings.Contains(out, "direction=right") {
		t.Errorf("unexpected output: %s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("colors written to a non-terminal: %q", out)
	}
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("frame", "index", 4)
	if !strings.Contains(buf.String(), "DBG") || !strings.Contains(buf.String(), "index=4") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Info("nothing")
}
