package srs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCompile_ToolUnavailable(t *testing.T) {
	c := NewCompiler("rulesmith-no-such-binary", []string{"compile", "{{input}}"})

	result := c.Compile("in.json", "out.srs")
	if result.Status != StatusToolUnavailable {
		t.Errorf("status = %v, want StatusToolUnavailable", result.Status)
	}
	if result.Message == "" {
		t.Error("expected a lookup error message")
	}
}

func TestCompile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "in.json")
	output := filepath.Join(tmpDir, "out.srs")

	// cp stands in for a compiler that reads the input and writes the output.
	c := NewCompiler("cp", []string{"{{input}}", "{{output}}"})

	if err := os.WriteFile(input, []byte(`{"version":4,"rules":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	result := c.Compile(input, output)
	if result.Status != StatusCompiled {
		t.Fatalf("status = %v (%s), want StatusCompiled", result.Status, result.Message)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output artifact: %v", err)
	}
}

func TestCompile_FailureIsReportedNotFatal(t *testing.T) {
	// cp with a missing input exits non-zero and complains on stderr.
	c := NewCompiler("cp", []string{"{{input}}", "{{output}}"})

	result := c.Compile("/nonexistent/in.json", filepath.Join(t.TempDir(), "out.srs"))
	if result.Status != StatusFailed {
		t.Fatalf("status = %v, want StatusFailed", result.Status)
	}
	if result.Message == "" {
		t.Error("expected an error message from stderr")
	}
}

func TestExpandArg(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"compile", "compile"},
		{"{{input}}", "in.json"},
		{"--output={{output}}", "--output=out.srs"},
	}

	for _, tt := range tests {
		if got := expandArg(tt.arg, "in.json", "out.srs"); got != tt.want {
			t.Errorf("expandArg(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}
