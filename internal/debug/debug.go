// Package debug provides debug tracing for the CLI application.
// Output goes to stderr and is disabled unless --debug is set.
package debug

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	logger  = zerolog.Nop()
)

// SetDebug enables or disables debug mode.
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	rebuild()
}

// SetNoColor disables colored output.
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
	rebuild()
}

// IsEnabled returns whether debug mode is enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// rebuild reconstructs the logger for the current settings.
// Caller must hold mu.
func rebuild() {
	if !enabled {
		logger = zerolog.Nop()
		return
	}
	cw := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}
	logger = zerolog.New(cw).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug prints a debug message with timestamp.
func Debug(format string, args ...interface{}) {
	l := current()
	l.Debug().Msgf(format, args...)
}

// Debugf is an alias for Debug.
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugValue prints key=value style debug info.
func DebugValue(key string, value interface{}) {
	l := current()
	l.Debug().Interface("value", value).Msg(key)
}

// DebugJSON prints structured data for debugging.
func DebugJSON(key string, v interface{}) {
	l := current()
	l.Debug().Interface("data", v).Msg(key)
}
