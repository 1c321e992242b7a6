// Package logger prints optional diagnostics for the ingestion and
// retrieval pipeline. Nothing is written unless verbose mode is enabled
// via the --verbose flag; all output goes to stderr so it never mixes
// with command output on stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
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

// SetOutput redirects verbose logs away from stderr, letting callers
// capture them.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Section marks the start of a pipeline stage.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Debug logs fine-grained progress.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info logs notable pipeline events.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn logs recoverable problems, like a file that failed extraction.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}
