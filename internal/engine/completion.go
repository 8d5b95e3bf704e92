// Completion actions: the one-shot effect of a finished project.
package engine

import (
	"log/slog"
)

// CompletionKind tags the closed set of completion effects.
type CompletionKind string

const (
	CompletionHouse  CompletionKind = "house"
	CompletionBoost  CompletionKind = "yield_boost"
	CompletionUnlock CompletionKind = "unlock_occupation"
	CompletionCastle CompletionKind = "castle"
)

// DefaultHouseCapacity is the number of worker slots a house adds.
const DefaultHouseCapacity = 2

// CompletionAction mutates the village once, when its project finishes.
type CompletionAction interface {
	Kind() CompletionKind
	UponCompletion(v *Village)
}

// HouseComplete raises the worker ceiling.
type HouseComplete struct {
	ExtraWorkers int
}

// NewHouseComplete returns a house with the default capacity.
func NewHouseComplete() HouseComplete { return HouseComplete{ExtraWorkers: DefaultHouseCapacity} }

func (HouseComplete) Kind() CompletionKind { return CompletionHouse }

func (c HouseComplete) UponCompletion(v *Village) {
	extra := c.ExtraWorkers
	if extra <= 0 {
		extra = DefaultHouseCapacity
	}
	v.MaxWorkers += extra
}

// YieldBoost raises the daily yield of one catalog occupation.
type YieldBoost struct {
	Occupation string
	Amount     int
}

func (YieldBoost) Kind() CompletionKind { return CompletionBoost }

func (c YieldBoost) UponCompletion(v *Village) {
	action, ok := v.Occupations[c.Occupation]
	if !ok {
		slog.Warn("yield boost for missing occupation", "occupation", c.Occupation)
		return
	}
	boosted, ok := withYield(action, c.Amount)
	if !ok {
		slog.Warn("occupation has no yield to boost", "occupation", c.Occupation, "kind", action.Kind())
		return
	}
	v.Occupations[c.Occupation] = boosted
}

// UnlockOccupation adds a new occupation to the catalog.
type UnlockOccupation struct {
	Occupation string
	Action     OccupationAction
}

func (UnlockOccupation) Kind() CompletionKind { return CompletionUnlock }

func (c UnlockOccupation) UponCompletion(v *Village) {
	if c.Action == nil {
		return
	}
	v.RegisterOccupation(c.Occupation, c.Action)
	v.record(v.currentDay(), CategoryConstruction, "Villagers can now work as %s", c.Occupation)
}

// CastleComplete wins the game.
type CastleComplete struct{}

func (CastleComplete) Kind() CompletionKind { return CompletionCastle }

func (CastleComplete) UponCompletion(v *Village) {
	v.Won = true
	v.GameOver = true
	v.record(v.currentDay(), CategoryGame, "The castle stands. The village has won")
	slog.Info("village won", "day", v.currentDay(), "workers", len(v.Workers))
}
