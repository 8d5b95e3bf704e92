package agents

// DefaultDeathThreshold is the number of consecutive unfed days that kills a worker.
const DefaultDeathThreshold = 5

// Feed records a day on which the worker got its ration.
func (w *Worker) Feed() {
	w.Hungry = false
	w.DaysHungry = 0
}

// Starve records a day on which the worker went without food.
func (w *Worker) Starve() {
	w.Hungry = true
	w.DaysHungry++
}

// Starved reports whether the worker has gone unfed for threshold days in a row.
// A non-positive threshold falls back to DefaultDeathThreshold.
func (w *Worker) Starved(threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultDeathThreshold
	}
	return w.DaysHungry >= threshold
}

// ApplyRation runs one day of the hunger state machine and reports whether
// the worker is now dead of starvation.
func (w *Worker) ApplyRation(fed bool, threshold int) (dead bool) {
	if fed {
		w.Feed()
		return false
	}
	w.Starve()
	return w.Starved(threshold)
}
