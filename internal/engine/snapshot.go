package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/talgya/hamlet/internal/agents"
	"github.com/talgya/hamlet/internal/economy"
)

// Snapshot is the plain, serializable state of a village. Stores persist
// snapshots and never see the live aggregate.
type Snapshot struct {
	Name             string            `json:"name"`
	Resources        economy.Stockpile `json:"resources"`
	MaxWorkers       int               `json:"max_workers"`
	DeathThreshold   int               `json:"death_threshold"`
	Workers          []agents.Worker   `json:"workers"`
	Projects         []ProjectState    `json:"projects"`
	Buildings        []string          `json:"buildings"`
	DaysElapsed      int               `json:"days_elapsed"`
	GameOver         bool              `json:"game_over"`
	Won              bool              `json:"won"`
	Occupations      []OccupationSpec  `json:"occupations"`
	PossibleProjects []ProjectSpec     `json:"possible_projects"`
	Events           []Event           `json:"events"`
}

// ProjectState is an in-progress project inside a snapshot.
type ProjectState struct {
	Name          string         `json:"name"`
	DaysRemaining int            `json:"days_remaining"`
	StartedDay    int            `json:"started_day"`
	Completion    CompletionSpec `json:"completion"`
}

// Snapshot captures the village. Catalogs are sorted by name.
func (v *Village) Snapshot() *Snapshot {
	s := &Snapshot{
		Name:           v.Name,
		Resources:      v.Resources,
		MaxWorkers:     v.MaxWorkers,
		DeathThreshold: v.DeathThreshold,
		Buildings:      slices.Clone(v.Buildings),
		DaysElapsed:    v.DaysElapsed,
		GameOver:       v.GameOver,
		Won:            v.Won,
		Events:         slices.Clone(v.Events),
	}

	s.Workers = make([]agents.Worker, 0, len(v.Workers))
	for _, w := range v.Workers {
		s.Workers = append(s.Workers, *w)
	}

	s.Projects = make([]ProjectState, 0, len(v.Projects))
	for _, p := range v.Projects {
		s.Projects = append(s.Projects, ProjectState{
			Name:          p.Name,
			DaysRemaining: p.DaysRemaining,
			StartedDay:    p.StartedDay,
			Completion:    DescribeCompletion(p.Completion),
		})
	}

	for _, name := range slices.Sorted(maps.Keys(v.Occupations)) {
		s.Occupations = append(s.Occupations, DescribeOccupation(name, v.Occupations[name]))
	}
	for _, name := range slices.Sorted(maps.Keys(v.PossibleProjects)) {
		s.PossibleProjects = append(s.PossibleProjects, DescribeProject(v.PossibleProjects[name]))
	}
	return s
}

// Restore rebuilds a village from a snapshot.
func Restore(s *Snapshot) (*Village, error) {
	if s == nil {
		return nil, fmt.Errorf("restore: nil snapshot: %w", ErrInvalidSpec)
	}

	v := NewVillage()
	v.Name = s.Name
	v.Resources = s.Resources
	v.Resources.Clamp()
	if s.MaxWorkers > 0 {
		v.MaxWorkers = s.MaxWorkers
	}
	if s.DeathThreshold > 0 {
		v.DeathThreshold = s.DeathThreshold
	}
	v.Buildings = slices.Clone(s.Buildings)
	v.DaysElapsed = s.DaysElapsed
	v.GameOver = s.GameOver
	v.Won = s.Won
	v.Events = slices.Clone(s.Events)

	for _, spec := range s.Occupations {
		action, err := BuildOccupation(spec)
		if err != nil {
			return nil, fmt.Errorf("restore %q: %w", s.Name, err)
		}
		v.RegisterOccupation(spec.Name, action)
	}
	for _, spec := range s.PossibleProjects {
		pp, err := BuildProject(spec)
		if err != nil {
			return nil, fmt.Errorf("restore %q: %w", s.Name, err)
		}
		v.RegisterProject(pp)
	}

	if len(s.Workers) > v.MaxWorkers {
		return nil, fmt.Errorf("restore %q: %d workers over capacity %d: %w",
			s.Name, len(s.Workers), v.MaxWorkers, ErrInvalidSpec)
	}
	for _, w := range s.Workers {
		if _, ok := v.Occupations[w.Occupation]; !ok {
			return nil, fmt.Errorf("restore %q: worker %q has unknown occupation %q: %w",
				s.Name, w.Name, w.Occupation, ErrInvalidSpec)
		}
		v.Workers = append(v.Workers, &w)
	}
	for _, ps := range s.Projects {
		completion, err := buildOptionalCompletion(ps.Completion)
		if err != nil {
			return nil, fmt.Errorf("restore %q project %q: %w", s.Name, ps.Name, err)
		}
		p := NewProject(ps.Name, ps.DaysRemaining, completion)
		p.StartedDay = ps.StartedDay
		v.Projects = append(v.Projects, p)
	}
	return v, nil
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Workers = slices.Clone(s.Workers)
	c.Projects = slices.Clone(s.Projects)
	c.Buildings = slices.Clone(s.Buildings)
	c.Occupations = slices.Clone(s.Occupations)
	c.PossibleProjects = slices.Clone(s.PossibleProjects)
	c.Events = slices.Clone(s.Events)
	return &c
}
