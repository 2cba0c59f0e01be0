// Package logger provides levelled diagnostic output for samvidhan.
//
// Warnings (skipped corpus files, rejected prompt files, lenient scenario
// failures) are always written. Info and Debug lines, which trace the index
// build and query pipelines, appear only under --verbose. All output goes to
// stderr so command results on stdout stay machine readable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level selects which lines are written.
type Level int

// Levels, quietest first.
const (
	LevelSilent Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelSilent:
		return "silent"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

var (
	mu     sync.Mutex
	level            = LevelWarn
	output io.Writer = os.Stderr
)

// SetLevel sets the most detailed level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// CurrentLevel returns the active level.
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetVerbose switches between LevelDebug and the default LevelWarn.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// IsVerbose reports whether Info and Debug lines are written.
func IsVerbose() bool {
	return CurrentLevel() >= LevelInfo
}

// SetOutput redirects all log lines. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l > level {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug writes a trace line under --verbose.
func Debug(format string, args ...any) {
	logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Info writes a progress line under --verbose.
func Info(format string, args ...any) {
	logf(LevelInfo, "[INFO] ", format, args...)
}

// Warn writes a warning unless the logger is silent.
func Warn(format string, args ...any) {
	logf(LevelWarn, "Warning: ", format, args...)
}

// Section writes a pipeline header under --verbose.
func Section(name string) {
	logf(LevelInfo, "", "\n=== %s ===", name)
}

// Timed logs the start of a named step and returns a func that logs its
// elapsed time. Use as: defer logger.Timed("embed")().
func Timed(name string) func() {
	start := time.Now()
	Debug("%s: started", name)
	return func() {
		Debug("%s: finished in %s", name, time.Since(start).Round(time.Millisecond))
	}
}
