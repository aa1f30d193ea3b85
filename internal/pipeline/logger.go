// =============================================================================
// Invoice Generator - Logger
// =============================================================================
//
// Small printf-style logging interface used by the pipeline. The default
// implementation writes leveled lines to stdout; Debug output is gated on
// the verbose flag.
//
// =============================================================================

package pipeline

import "fmt"

// Logger is the logging interface the pipeline writes to.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewLogger returns the stdout logger. Debug lines are printed only when
// verbose is true.
func NewLogger(verbose bool) Logger {
	return &stdoutLogger{verbose: verbose}
}

type stdoutLogger struct {
	verbose bool
}

func (l *stdoutLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *stdoutLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *stdoutLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *stdoutLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}
