package utils

import (
	"log/slog"
	"time"
)

// Timer logs the time spent in a named section at debug level.
type Timer struct {
	logger *slog.Logger
	name   string
	start  time.Time
}

// NewTimer starts a timer. Use it as defer NewTimer(logger, name).Stop().
func NewTimer(logger *slog.Logger, name string) *Timer {
	return &Timer{logger: logger, name: name, start: time.Now()}
}

// Stop logs and returns the elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.Debug("timer", "name", t.name, "elapsed", elapsed)
	}
	return elapsed
}
