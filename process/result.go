package process

import (
	"strings"
	"time"
)

// maxDiagnosticLines bounds how much stderr Diagnostic reports.
const maxDiagnosticLines = 10

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Stdout is the captured standard output.
	Stdout []byte
	// Stderr is the captured standard error.
	Stderr []byte
	// ExitCode is the process exit code. -1 if the process was killed.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}

// Diagnostic returns the last lines of stderr, trimmed, for error reporting.
func (r *Result) Diagnostic() string {
	if r == nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(string(r.Stderr)), "\n")
	if len(lines) > maxDiagnosticLines {
		lines = lines[len(lines)-maxDiagnosticLines:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
