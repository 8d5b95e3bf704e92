package engine

import "fmt"

// Event is a notable occurrence in the village.
type Event struct {
	Day         int    `json:"day" db:"day"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`
}

// Event categories.
const (
	CategoryHire         = "hire"
	CategoryProject      = "project"
	CategoryConstruction = "construction"
	CategoryDeath        = "death"
	CategoryGame         = "game"
)

// maxEvents bounds the in-memory event log.
const maxEvents = 1000

func (v *Village) record(day int, category, format string, args ...any) {
	v.Events = append(v.Events, Event{
		Day:         day,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
	// Trim old events to prevent unbounded growth.
	if len(v.Events) > maxEvents {
		v.Events = v.Events[len(v.Events)-maxEvents:]
	}
}

// RecentEvents returns up to n of the latest events, oldest first.
func (v *Village) RecentEvents(n int) []Event {
	if n <= 0 || len(v.Events) == 0 {
		return nil
	}
	start := 0
	if len(v.Events) > n {
		start = len(v.Events) - n
	}
	return v.Events[start:]
}
