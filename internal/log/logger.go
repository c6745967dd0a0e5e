// Package log is a small leveled logger for CLI output.
//
// Info and above go to stderr so generated artifacts can be piped from
// stdout without interleaving diagnostics.
package log

import (
	"fmt"
	"os"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var (
	verbose  = false
	prefixes = map[level]string{
		levelDebug: "\033[37m[DBG]\033[0m", // White
		levelInfo:  "\033[36m[INF]\033[0m", // Cyan
		levelWarn:  "\033[33m[WRN]\033[0m", // Yellow
		levelError: "\033[31m[ERR]\033[0m", // Red
	}
)

// SetVerbose enables debug-level output.
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose returns true if debug-level output is enabled.
func IsVerbose() bool {
	return verbose
}

// Debugf logs a debug message if verbose output is enabled.
func Debugf(format string, args ...interface{}) {
	if verbose {
		write(levelDebug, format, args...)
	}
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	write(levelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	write(levelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	write(levelError, format, args...)
}

// Fatalf logs an error message and exits with a non-zero code.
func Fatalf(format string, args ...interface{}) {
	write(levelError, format, args...)
	os.Exit(1)
}

func write(lvl level, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", prefixes[lvl], fmt.Sprintf(format, args...))
}
