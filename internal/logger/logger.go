// Package logger provides leveled logging for Docent. Debug and info
// messages are emitted only when verbose mode is enabled via the
// --verbose flag; warnings and errors are always emitted. Output goes
// to stderr so it never mixes with command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the severity of a log message.
type Level int

// Severities, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var prefixes = map[Level]string{
	LevelDebug: "[DEBUG]",
	LevelInfo:  "[INFO]",
	LevelWarn:  "[WARN]",
	LevelError: "[ERROR]",
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables debug and info output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr; useful for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level < LevelWarn && !verbose {
		return
	}
	fmt.Fprintf(output, prefixes[level]+" "+format+"\n", args...)
}

// Debug logs a message at debug level.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info logs a message at info level.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn logs a message at warn level. Always emitted.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error logs a message at error level. Always emitted.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}
