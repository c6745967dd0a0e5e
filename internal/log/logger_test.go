package log

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStderr captures everything written to os.Stderr while f runs.
func captureStderr(t *testing.T, f func()) string {
	t.Helper()

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	outCh := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outCh <- buf.String()
	}()

	f()

	w.Close()
	os.Stderr = oldStderr
	return <-outCh
}

func TestInfof(t *testing.T) {
	out := captureStderr(t, func() {
		Infof("hello %s", "world")
	})

	if !strings.Contains(out, "[INF]") || !strings.Contains(out, "hello world") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestDebugfRespectsVerbose(t *testing.T) {
	SetVerbose(false)
	out := captureStderr(t, func() {
		Debugf("hidden")
	})
	if out != "" {
		t.Errorf("expected no debug output, got %q", out)
	}

	SetVerbose(true)
	defer SetVerbose(false)
	out = captureStderr(t, func() {
		Debugf("shown")
	})
	if !strings.Contains(out, "[DBG]") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestWarnfAndErrorf(t *testing.T) {
	out := captureStderr(t, func() {
		Warnf("careful")
		Errorf("broken")
	})

	if !strings.Contains(out, "[WRN]") || !strings.Contains(out, "careful") {
		t.Errorf("missing warning output: %q", out)
	}
	if !strings.Contains(out, "[ERR]") || !strings.Contains(out, "broken") {
		t.Errorf("missing error output: %q", out)
	}
}
