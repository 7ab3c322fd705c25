// Package logger writes diagnostic output for sourcerank to stderr.
//
// Debug, Info and Section lines only appear with --verbose and trace the
// load, score and select pipeline. Warnings (skipped rows, unreadable
// catalogs) are always printed so that silently shrinking pools are
// visible without extra flags.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func emit(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message in verbose mode.
func Debug(format string, args ...any) {
	emit(false, "[DEBUG] ", format, args...)
}

// Info prints a message in verbose mode.
func Info(format string, args ...any) {
	emit(false, "[INFO] ", format, args...)
}

// Warn prints a message regardless of verbose mode.
func Warn(format string, args ...any) {
	emit(true, "[WARN] ", format, args...)
}

// Section prints a stage header in verbose mode.
func Section(name string) {
	emit(false, "\n=== ", "%s ===", name)
}

// Timed logs the elapsed time of a stage when the returned func is called.
//
//	defer logger.Timed("load catalogs")()
func Timed(stage string) func() {
	start := time.Now()
	return func() {
		Debug("%s took %s", stage, time.Since(start).Round(time.Microsecond))
	}
}
