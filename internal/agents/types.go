// Package agents provides the worker data model and the hunger state machine.
package agents

import (
	"github.com/google/uuid"
)

// WorkerID identifies a worker across saves. Names are not unique.
type WorkerID = string

// Worker is an individual villager with an occupation and a hunger counter.
type Worker struct {
	ID         WorkerID `json:"id"`
	Name       string   `json:"name"`
	Occupation string   `json:"occupation"` // Key into the village occupation catalog

	// Hunger, see hunger.go
	Hungry     bool `json:"hungry"`
	DaysHungry int  `json:"days_hungry"`

	// Metadata
	HiredDay int `json:"hired_day"`
}

// NewWorker creates a fed worker hired on the given day.
func NewWorker(name, occupation string, day int) *Worker {
	return &Worker{
		ID:         uuid.NewString(),
		Name:       name,
		Occupation: occupation,
		HiredDay:   day,
	}
}
