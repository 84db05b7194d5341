package model

import (
	"log/slog"
	"math/rand/v2"

	"github.com/sheikhrachel/gol-universe/rules"
)

// Option configures a Grid at construction time.
type Option func(*Grid)

// WithRule replaces the default B3/S23 rule.
func WithRule(rule rules.Rule) Option {
	return func(g *Grid) {
		if rule != nil {
			g.rule = rule
		}
	}
}

// WithRand sets the random source used by Reset.
func WithRand(rng *rand.Rand) Option {
	return func(g *Grid) {
		g.rng = rng
	}
}

// WithSeed seeds a PCG source for reproducible random fills.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, 0)))
}

// WithWorkers evaluates Tick on n goroutines when n > 1.
func WithWorkers(n int) Option {
	return func(g *Grid) {
		g.workers = max(n, 1)
	}
}

// WithStamping selects how InsertTemplate treats offsets near the edges.
func WithStamping(mode StampMode) Option {
	return func(g *Grid) {
		g.stamping = mode
	}
}

// WithLogger sets the logger used for tick timings.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}
