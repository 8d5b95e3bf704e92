package engine

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Engine advances a village day by day in the caller's goroutine.
type Engine struct {
	Interval time.Duration // Pause between days; 0 runs flat out
	running  atomic.Bool

	// OnDay runs after every simulated day (autosave, rendering).
	OnDay func(v *Village)
}

// NewEngine creates an engine with no pacing.
func NewEngine() *Engine {
	return &Engine{}
}

// Run advances v for up to days days, stopping early when the game ends
// or Stop is called. Returns the number of days simulated.
func (e *Engine) Run(v *Village, days int) int {
	if days <= 0 {
		return 0
	}
	e.running.Store(true)
	slog.Debug("day loop started", "day", v.DaysElapsed, "days", days)

	ran := 0
	for e.running.Load() && !v.GameOver && ran < days {
		start := time.Now()

		v.AdvanceDay()
		ran++

		if e.OnDay != nil {
			e.OnDay(v)
		}

		// Sleep for the remainder of the interval.
		if e.Interval > 0 {
			if elapsed := time.Since(start); elapsed < e.Interval {
				time.Sleep(e.Interval - elapsed)
			}
		}
	}

	e.running.Store(false)
	slog.Debug("day loop stopped", "day", v.DaysElapsed, "ran", ran, "game_over", v.GameOver)
	return ran
}

// Stop halts the loop after the current day. Safe to call from another
// goroutine.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether Run is in progress.
func (e *Engine) Running() bool {
	return e.running.Load()
}
