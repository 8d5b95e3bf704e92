// Occupation actions: one day of work for one worker against the shared pools.
package engine

import (
	"github.com/talgya/hamlet/internal/economy"
)

// OccupationKind tags the closed set of occupation behaviors.
type OccupationKind string

const (
	KindFarmer     OccupationKind = "farmer"
	KindLumberjack OccupationKind = "lumberjack"
	KindMiner      OccupationKind = "miner"
	KindBuilder    OccupationKind = "builder"
)

// Base daily yields.
const (
	DefaultFoodPerDay  = 5
	DefaultWoodPerDay  = 1
	DefaultMetalPerDay = 1
)

// rationSize is the food a worker eats per day.
const rationSize = 1

// OccupationAction applies one worker's day of work to the village and
// reports whether the worker was fed. Production only happens on a fed day.
type OccupationAction interface {
	Kind() OccupationKind
	Yield() int
	Perform(v *Village) (fed bool)
}

// FarmerAction eats from the food pool and then harvests.
type FarmerAction struct {
	FoodPerDay int
}

// NewFarmerAction returns a farmer with the base yield.
func NewFarmerAction() FarmerAction { return FarmerAction{FoodPerDay: DefaultFoodPerDay} }

func (FarmerAction) Kind() OccupationKind { return KindFarmer }
func (a FarmerAction) Yield() int         { return a.FoodPerDay }

// Perform feeds the farmer before the harvest. A farmer facing an empty
// pool cannot work, so nothing is produced.
func (a FarmerAction) Perform(v *Village) bool {
	if !v.Resources.Has(economy.Food, rationSize) {
		return false
	}
	v.Resources.Take(economy.Food, rationSize)
	v.Resources.Add(economy.Food, a.FoodPerDay)
	return true
}

// LumberjackAction eats and, if fed, cuts wood.
type LumberjackAction struct {
	WoodPerDay int
}

// NewLumberjackAction returns a lumberjack with the base yield.
func NewLumberjackAction() LumberjackAction {
	return LumberjackAction{WoodPerDay: DefaultWoodPerDay}
}

func (LumberjackAction) Kind() OccupationKind { return KindLumberjack }
func (a LumberjackAction) Yield() int         { return a.WoodPerDay }

func (a LumberjackAction) Perform(v *Village) bool {
	if !v.Resources.Take(economy.Food, rationSize) {
		return false
	}
	v.Resources.Add(economy.Wood, a.WoodPerDay)
	return true
}

// MinerAction eats and, if fed, digs metal.
type MinerAction struct {
	MetalPerDay int
}

// NewMinerAction returns a miner with the base yield.
func NewMinerAction() MinerAction { return MinerAction{MetalPerDay: DefaultMetalPerDay} }

func (MinerAction) Kind() OccupationKind { return KindMiner }
func (a MinerAction) Yield() int         { return a.MetalPerDay }

func (a MinerAction) Perform(v *Village) bool {
	if !v.Resources.Take(economy.Food, rationSize) {
		return false
	}
	v.Resources.Add(economy.Metal, a.MetalPerDay)
	return true
}

// BuilderAction eats and, if fed, puts a day of work into the oldest
// project that still needs it. The timer itself moves at the end of the day.
type BuilderAction struct{}

func (BuilderAction) Kind() OccupationKind { return KindBuilder }
func (BuilderAction) Yield() int           { return 0 }

func (BuilderAction) Perform(v *Village) bool {
	if !v.Resources.Take(economy.Food, rationSize) {
		return false
	}
	if p := v.nextProjectNeedingWork(); p != nil {
		p.effort++
	}
	return true
}

// withYield returns a copy of a with its daily yield raised by n, never
// below zero. Builders have no yield and are returned unchanged with ok=false.
func withYield(a OccupationAction, n int) (OccupationAction, bool) {
	switch act := a.(type) {
	case FarmerAction:
		act.FoodPerDay = max(act.FoodPerDay+n, 0)
		return act, true
	case LumberjackAction:
		act.WoodPerDay = max(act.WoodPerDay+n, 0)
		return act, true
	case MinerAction:
		act.MetalPerDay = max(act.MetalPerDay+n, 0)
		return act, true
	}
	return a, false
}
