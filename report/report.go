// Package report defines the observer through which the preprocessing
// operations announce advisory summaries, such as how many peaks an
// extraction kept. Operations stay silent by default; callers opt in by
// injecting a Reporter.
package report

import "go.uber.org/zap"

// Reporter receives advisory summaries. The variadic arguments are
// alternating key/value pairs. Implementations must be safe for concurrent
// use.
type Reporter interface {
	Info(msg string, keysAndValues ...any)
}

// Discard drops every message. It is the default Reporter of all
// preprocessing operations.
type Discard struct{}

// Info implements Reporter.
func (Discard) Info(string, ...any) {}

// Zap adapts a zap logger to the Reporter interface.
func Zap(logger *zap.Logger) Reporter {
	return zapReporter{sugar: logger.Sugar()}
}

type zapReporter struct {
	sugar *zap.SugaredLogger
}

func (r zapReporter) Info(msg string, keysAndValues ...any) {
	r.sugar.Infow(msg, keysAndValues...)
}
