// Package colors provides colored console output for the folio CLI.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger receives a copy of every console message.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled bool
	quiet        bool
	plain        bool
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("FOLIO_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		plain = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses Info and Success output. Errors and warnings still print.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetPlain disables ANSI color codes.
func SetPlain(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	plain = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output and returns a function restoring the
// previous writers.
func SetOutput(out, errOut io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	return func() {
		mu.Lock()
		defer mu.Unlock()
		stdout, stderr = prevOut, prevErr
	}
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelSuccess
	levelWarn
	levelError
)

func emit(lvl level, color, prefix string, msgs []string) {
	mu.RLock()
	l, isDebug, isQuiet, isPlain := logger, debugEnabled, quiet, plain
	out, errOut := stdout, stderr
	mu.RUnlock()

	if lvl == levelDebug && !isDebug {
		return
	}
	msg := strings.Join(msgs, " ")
	if l != nil {
		switch lvl {
		case levelDebug:
			l.Debug(msg)
		case levelInfo:
			l.Info(msg)
		case levelSuccess:
			l.Info(msg, "type", "success")
		case levelWarn:
			l.Warn(msg)
		case levelError:
			l.Error(msg)
		}
	}
	if isQuiet && (lvl == levelInfo || lvl == levelSuccess) {
		return
	}

	w := errOut
	if lvl == levelInfo || lvl == levelSuccess {
		w = out
	}
	var line string
	switch {
	case isPlain:
		line = prefix + msg
	case lvl == levelInfo:
		line = color + msg + Reset
	default:
		line = color + prefix + Reset + msg
	}
	if _, err := fmt.Fprintln(w, line); err != nil && w != os.Stderr {
		// last resort, never recurse through emit
		fmt.Fprintf(os.Stderr, "%s%s\n", prefix, msg)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	emit(levelError, Red, "Error: ", msgs)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	emit(levelWarn, Yellow, "Warning: ", msgs)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	emit(levelSuccess, Green, checkmark+" ", msgs)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	emit(levelInfo, Blue, "", msgs)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	emit(levelDebug, Cyan, "Debug: ", msgs)
}
