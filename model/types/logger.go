package types

import (
	"log"
	"os"
)

// Logger receives engine diagnostics: configuration warnings, dropped
// registrations and sweep summaries.
type Logger interface {
	Printf(format string, args ...interface{})
}

// ensure the stdlib logger satisfies the interface
var _ Logger = &log.Logger{}

// DefaultLogger returns the logger used when no custom logger is configured.
func DefaultLogger() Logger {
	return log.New(os.Stderr, "[scoreflow] ", log.LstdFlags)
}

// EnsureLogger returns the custom logger or the default one when nil.
func EnsureLogger(custom Logger) Logger {
	if custom != nil {
		return custom
	}
	return DefaultLogger()
}
