// Package srs invokes the external sing-box binary to compile rule-set
// source JSON into binary .srs artifacts. Compilation is best-effort: a
// missing binary skips the artifact, a failing one is reported and the
// remaining targets are still attempted.
package srs

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Status is the outcome of one compile invocation.
type Status int

const (
	// StatusCompiled means the artifact was produced.
	StatusCompiled Status = iota
	// StatusToolUnavailable means the compiler binary is not on PATH.
	StatusToolUnavailable
	// StatusFailed means the binary ran but exited non-zero.
	StatusFailed
)

// Result describes one compile invocation.
type Result struct {
	Status  Status
	Output  string // artifact path
	Message string // stderr or lookup error for non-success statuses
}

// Compiler shells out to a rule-set compiler binary.
type Compiler struct {
	binary string
	args   []string
}

// NewCompiler creates a Compiler. Each element of args is expanded with the
// {{input}} and {{output}} variables before invocation.
func NewCompiler(binary string, args []string) *Compiler {
	return &Compiler{binary: binary, args: args}
}

// Compile runs the compiler for one input/output pair.
func (c *Compiler) Compile(input, output string) Result {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		return Result{
			Status:  StatusToolUnavailable,
			Output:  output,
			Message: err.Error(),
		}
	}

	args := make([]string, len(c.args))
	for i, arg := range c.args {
		args[i] = expandArg(arg, input, output)
	}

	cmd := exec.Command(path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Result{
			Status:  StatusFailed,
			Output:  output,
			Message: msg,
		}
	}

	return Result{Status: StatusCompiled, Output: output}
}

func expandArg(arg, input, output string) string {
	if !strings.Contains(arg, "{{") {
		return arg
	}

	t := fasttemplate.New(arg, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		"input":  input,
		"output": output,
	})
}
