// Construction projects: catalog templates and work in progress.
package engine

import (
	"fmt"
	"log/slog"
)

// PossibleProject is an immutable catalog entry describing a construction.
type PossibleProject struct {
	Name           string
	WoodCost       int
	MetalCost      int
	DaysToComplete int
	Completion     CompletionAction
}

// NewPossibleProject creates a catalog entry. Durations below one day are
// raised to one so every project needs at least one builder-day.
func NewPossibleProject(name string, wood, metal, days int, completion CompletionAction) PossibleProject {
	if days < 1 {
		days = 1
	}
	return PossibleProject{
		Name:           name,
		WoodCost:       wood,
		MetalCost:      metal,
		DaysToComplete: days,
		Completion:     completion,
	}
}

func (pp PossibleProject) start(day int) *Project {
	p := NewProject(pp.Name, pp.DaysToComplete, pp.Completion)
	p.StartedDay = day
	return p
}

// Project is a construction in progress. Resources are sunk once started.
type Project struct {
	Name          string
	DaysRemaining int
	Completion    CompletionAction
	StartedDay    int

	effort int // Builder-days assigned during the current day cycle
}

// NewProject creates an in-progress project with the given days left.
func NewProject(name string, daysRemaining int, completion CompletionAction) *Project {
	if daysRemaining < 1 {
		daysRemaining = 1
	}
	return &Project{
		Name:          name,
		DaysRemaining: daysRemaining,
		Completion:    completion,
	}
}

// Effort returns the builder-days assigned to the project so far today.
func (p *Project) Effort() int {
	return p.effort
}

// nextProjectNeedingWork returns the oldest project whose remaining days
// are not yet covered by today's builders.
func (v *Village) nextProjectNeedingWork() *Project {
	for _, p := range v.Projects {
		if p.DaysRemaining-p.effort > 0 {
			return p
		}
	}
	return nil
}

// advanceProjects moves every project that received builder effort today
// and completes the ones whose timer reaches zero, oldest first.
func (v *Village) advanceProjects(day int) {
	var done []*Project
	active := v.Projects[:0]
	for _, p := range v.Projects {
		if p.effort > 0 {
			p.DaysRemaining -= p.effort
			p.effort = 0
		}
		if p.DaysRemaining > 0 {
			active = append(active, p)
			continue
		}
		p.DaysRemaining = 0
		done = append(done, p)
	}
	clear(v.Projects[len(active):])
	v.Projects = active

	for _, p := range done {
		v.completeProject(p, day)
	}
}

func (v *Village) completeProject(p *Project, day int) {
	if p.Completion != nil {
		p.Completion.UponCompletion(v)
	}
	v.Buildings = append(v.Buildings, p.Name)

	v.record(day, CategoryConstruction, "%s is completed after %s", p.Name, dayCount(day-p.StartedDay))
	slog.Info("project completed", "project", p.Name, "day", day, "buildings", len(v.Buildings))
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
