// Package engine provides the village aggregate and its day-cycle simulation.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hamlet/internal/agents"
	"github.com/talgya/hamlet/internal/economy"
)

// Rejections. Every rejected operation leaves the village unchanged.
var (
	ErrCapacityFull          = errors.New("village is at worker capacity")
	ErrUnknownOccupation     = errors.New("unknown occupation")
	ErrUnknownProject        = errors.New("unknown project")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrGameOver              = errors.New("game is over")
	ErrInvalidSpec           = errors.New("invalid catalog spec")
)

// Starting values for a fresh village.
const (
	DefaultFood       = 10
	DefaultMaxWorkers = 6
)

// Village is the aggregate root: workers, pools, projects and catalogs.
// It is owned by a single caller and is not safe for concurrent use.
type Village struct {
	Name string

	Resources      economy.Stockpile
	MaxWorkers     int
	DeathThreshold int

	// Workers in hiring order. Jobs run in this order every day.
	Workers []*agents.Worker

	// Catalogs. A missing key means the occupation or project is unavailable.
	Occupations      map[string]OccupationAction
	PossibleProjects map[string]PossibleProject

	Projects  []*Project // Under construction, oldest first
	Buildings []string

	DaysElapsed int
	GameOver    bool
	Won         bool

	Events []Event // Most recent maxEvents entries

	cycling bool // Inside AdvanceDay
}

// NewVillage creates a village with default pools and empty catalogs.
func NewVillage() *Village {
	return &Village{
		Resources:        economy.Stockpile{Food: DefaultFood},
		MaxWorkers:       DefaultMaxWorkers,
		DeathThreshold:   agents.DefaultDeathThreshold,
		Occupations:      make(map[string]OccupationAction),
		PossibleProjects: make(map[string]PossibleProject),
	}
}

// RegisterOccupation adds or replaces an occupation in the catalog.
func (v *Village) RegisterOccupation(name string, action OccupationAction) {
	if v.Occupations == nil {
		v.Occupations = make(map[string]OccupationAction)
	}
	v.Occupations[name] = action
}

// RegisterProject adds or replaces a project template in the catalog.
func (v *Village) RegisterProject(p PossibleProject) {
	if v.PossibleProjects == nil {
		v.PossibleProjects = make(map[string]PossibleProject)
	}
	v.PossibleProjects[p.Name] = p
}

// Hire appends a new worker. It is rejected when the village is full or
// the occupation is not in the catalog.
func (v *Village) Hire(name, occupation string) (*agents.Worker, error) {
	if v.GameOver {
		return nil, ErrGameOver
	}
	if len(v.Workers) >= v.MaxWorkers {
		return nil, fmt.Errorf("hire %s: %w (%d/%d)", name, ErrCapacityFull, len(v.Workers), v.MaxWorkers)
	}
	if _, ok := v.Occupations[occupation]; !ok {
		return nil, fmt.Errorf("hire %s as %q: %w", name, occupation, ErrUnknownOccupation)
	}

	w := agents.NewWorker(name, occupation, v.DaysElapsed)
	v.Workers = append(v.Workers, w)

	v.record(v.DaysElapsed, CategoryHire, "%s joins the village as a %s", name, occupation)
	slog.Info("worker hired", "name", name, "occupation", occupation,
		"workers", len(v.Workers), "max_workers", v.MaxWorkers)
	return w, nil
}

// StartProject pays for a catalog project up front and queues it for builders.
func (v *Village) StartProject(name string) (*Project, error) {
	if v.GameOver {
		return nil, ErrGameOver
	}
	pp, ok := v.PossibleProjects[name]
	if !ok {
		return nil, fmt.Errorf("start %q: %w", name, ErrUnknownProject)
	}
	if !v.Resources.Spend(pp.WoodCost, pp.MetalCost) {
		return nil, fmt.Errorf("start %q: %w (needs wood %d metal %d, have wood %d metal %d)",
			name, ErrInsufficientResources, pp.WoodCost, pp.MetalCost, v.Resources.Wood, v.Resources.Metal)
	}

	p := pp.start(v.DaysElapsed)
	v.Projects = append(v.Projects, p)

	v.record(v.DaysElapsed, CategoryProject, "Construction of %s begins (%d days)", name, p.DaysRemaining)
	slog.Info("project started", "project", name, "days", p.DaysRemaining,
		"wood_left", v.Resources.Wood, "metal_left", v.Resources.Metal)
	return p, nil
}

// Population returns the number of living workers.
func (v *Village) Population() int {
	return len(v.Workers)
}

// HasBuilding reports whether at least one building with the name is complete.
func (v *Village) HasBuilding(name string) bool {
	return v.CountBuilding(name) > 0
}

// CountBuilding returns how many buildings with the name are complete.
func (v *Village) CountBuilding(name string) int {
	n := 0
	for _, b := range v.Buildings {
		if b == name {
			n++
		}
	}
	return n
}

// HungryWorkers returns the workers who went unfed on the last day.
func (v *Village) HungryWorkers() []*agents.Worker {
	var out []*agents.Worker
	for _, w := range v.Workers {
		if w.Hungry {
			out = append(out, w)
		}
	}
	return out
}
