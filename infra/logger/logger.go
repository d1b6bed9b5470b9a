package logger

import corelogger "github.com/flexworks/co2flex/core/logger"

// Logger mirrors the core logging interface so callers wiring infra only
// need this package.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods. Used in tests and as the
// fallback when a sink refuses to come up.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns a Logger for the given component. Output format and level are
// picked from the APP_ENV and LOG_LEVEL environment variables.
func New(component string) Logger {
	return NewZerologLogger(component)
}
