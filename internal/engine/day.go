// The day cycle. This is the only place simulation time moves.
package engine

import (
	"log/slog"
)

// AdvanceDay runs one day: jobs in hiring order, hunger, starvation,
// project timers, the day counter and the game-over check. Once the game
// is over the call does nothing.
func (v *Village) AdvanceDay() {
	if v.GameOver {
		slog.Debug("day skipped, game is over", "day", v.DaysElapsed)
		return
	}

	v.cycling = true
	defer func() { v.cycling = false }()

	day := v.DaysElapsed + 1
	hadWorkers := len(v.Workers) > 0

	// Jobs. Each action sees the pools as the workers before it left them,
	// so the first hired eats first when food runs short.
	fed := make([]bool, len(v.Workers))
	for i, w := range v.Workers {
		action, ok := v.Occupations[w.Occupation]
		if !ok {
			slog.Warn("worker has no occupation in catalog", "worker", w.Name, "occupation", w.Occupation)
			continue
		}
		fed[i] = action.Perform(v)
	}

	// Hunger and starvation removal.
	deaths := 0
	survivors := v.Workers[:0]
	for i, w := range v.Workers {
		if w.ApplyRation(fed[i], v.DeathThreshold) {
			deaths++
			v.record(day, CategoryDeath, "%s the %s starved after %s without food",
				w.Name, w.Occupation, dayCount(w.DaysHungry))
			slog.Info("worker starved", "name", w.Name, "occupation", w.Occupation, "day", day)
			continue
		}
		survivors = append(survivors, w)
	}
	clear(v.Workers[len(survivors):])
	v.Workers = survivors

	v.advanceProjects(day)

	v.DaysElapsed = day
	v.Resources.Clamp()

	if hadWorkers && len(v.Workers) == 0 && !v.GameOver {
		v.GameOver = true
		v.record(day, CategoryGame, "The last villager is gone")
		slog.Info("game over", "day", day, "buildings", len(v.Buildings))
	}

	slog.Debug("daily report",
		"day", day,
		"time", Calendar(day),
		"alive", len(v.Workers),
		"deaths", deaths,
		"hungry", len(v.HungryWorkers()),
		"food", v.Resources.Food,
		"wood", v.Resources.Wood,
		"metal", v.Resources.Metal,
		"projects", len(v.Projects),
		"buildings", len(v.Buildings),
	)
}

// currentDay is the day that events belong to: the day being simulated
// inside AdvanceDay, otherwise the last finished day.
func (v *Village) currentDay() int {
	if v.cycling {
		return v.DaysElapsed + 1
	}
	return v.DaysElapsed
}
