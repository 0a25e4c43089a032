package agent

import (
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/belief"
	"github.com/beka-birhanu/vinom-agent/game/goal"
)

const (
	defaultArenaSize = 10
	defaultArrows    = 1
)

// Logger is the logging the agent needs.
type Logger interface {
	Debug(string)
	Info(string)
	Warning(string)
}

type noopLogger struct{}

func (noopLogger) Debug(string)   {}
func (noopLogger) Info(string)    {}
func (noopLogger) Warning(string) {}

type Option func(*Agent)

// WithBounds sets the arena size. Cells outside it are known walls.
func WithBounds(b game.Bounds) Option {
	return func(a *Agent) {
		a.bounds = b
	}
}

// WithThresholds overrides the danger thresholds.
func WithThresholds(t belief.Thresholds) Option {
	return func(a *Agent) {
		a.thresholds = t
	}
}

// WithSelector replaces the goal list.
func WithSelector(s *goal.Selector) Option {
	return func(a *Agent) {
		a.selector = s
	}
}

// WithArrows sets the arrows the agent believes it holds before the first percept.
func WithArrows(n int) Option {
	return func(a *Agent) {
		a.initialArrows = n
	}
}

func WithLogger(l Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}
