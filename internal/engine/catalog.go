// Catalog specs: the serializable form of occupations and projects, used
// by configuration files and saved villages.
package engine

import (
	"fmt"
	"slices"

	"github.com/talgya/hamlet/internal/agents"
	"github.com/talgya/hamlet/internal/economy"
)

// OccupationSpec describes one occupation catalog entry. A zero Yield
// means the kind's base yield; there is no zero-yield occupation.
type OccupationSpec struct {
	Name  string         `yaml:"name" json:"name"`
	Kind  OccupationKind `yaml:"kind" json:"kind"`
	Yield int            `yaml:"yield,omitempty" json:"yield,omitempty"`
}

// CompletionSpec describes a completion effect.
//
//	house:             Amount extra worker slots
//	yield_boost:       Amount added to Occupation's yield
//	unlock_occupation: registers Occupation as OccupationKind with yield Amount
//	castle:            no parameters
//
// Amount must not be negative. A zero house or unlock Amount takes the base value.
type CompletionSpec struct {
	Kind           CompletionKind `yaml:"kind" json:"kind"`
	Amount         int            `yaml:"amount,omitempty" json:"amount,omitempty"`
	Occupation     string         `yaml:"occupation,omitempty" json:"occupation,omitempty"`
	OccupationKind OccupationKind `yaml:"occupation_kind,omitempty" json:"occupation_kind,omitempty"`
}

// ProjectSpec describes one possible project.
type ProjectSpec struct {
	Name       string         `yaml:"name" json:"name"`
	Wood       int            `yaml:"wood" json:"wood"`
	Metal      int            `yaml:"metal" json:"metal"`
	Days       int            `yaml:"days" json:"days"`
	Completion CompletionSpec `yaml:"completion" json:"completion"`
}

// BuildOccupation turns a spec into an action. A zero yield takes the
// occupation's base yield.
func BuildOccupation(spec OccupationSpec) (OccupationAction, error) {
	if spec.Yield < 0 {
		return nil, fmt.Errorf("occupation %q: negative yield: %w", spec.Name, ErrInvalidSpec)
	}
	switch spec.Kind {
	case KindFarmer:
		return FarmerAction{FoodPerDay: orDefault(spec.Yield, DefaultFoodPerDay)}, nil
	case KindLumberjack:
		return LumberjackAction{WoodPerDay: orDefault(spec.Yield, DefaultWoodPerDay)}, nil
	case KindMiner:
		return MinerAction{MetalPerDay: orDefault(spec.Yield, DefaultMetalPerDay)}, nil
	case KindBuilder:
		return BuilderAction{}, nil
	}
	return nil, fmt.Errorf("occupation %q: unknown kind %q: %w", spec.Name, spec.Kind, ErrInvalidSpec)
}

// DescribeOccupation is the inverse of BuildOccupation.
func DescribeOccupation(name string, a OccupationAction) OccupationSpec {
	return OccupationSpec{Name: name, Kind: a.Kind(), Yield: a.Yield()}
}

// BuildCompletion turns a spec into a completion action.
func BuildCompletion(spec CompletionSpec) (CompletionAction, error) {
	if spec.Amount < 0 {
		return nil, fmt.Errorf("%s completion: negative amount: %w", spec.Kind, ErrInvalidSpec)
	}
	switch spec.Kind {
	case CompletionHouse:
		return HouseComplete{ExtraWorkers: orDefault(spec.Amount, DefaultHouseCapacity)}, nil
	case CompletionBoost:
		if spec.Occupation == "" {
			return nil, fmt.Errorf("yield boost without occupation: %w", ErrInvalidSpec)
		}
		return YieldBoost{Occupation: spec.Occupation, Amount: spec.Amount}, nil
	case CompletionUnlock:
		if spec.Occupation == "" {
			return nil, fmt.Errorf("unlock without occupation name: %w", ErrInvalidSpec)
		}
		action, err := BuildOccupation(OccupationSpec{
			Name:  spec.Occupation,
			Kind:  spec.OccupationKind,
			Yield: spec.Amount,
		})
		if err != nil {
			return nil, fmt.Errorf("unlock: %w", err)
		}
		return UnlockOccupation{Occupation: spec.Occupation, Action: action}, nil
	case CompletionCastle:
		return CastleComplete{}, nil
	}
	return nil, fmt.Errorf("unknown completion kind %q: %w", spec.Kind, ErrInvalidSpec)
}

// DescribeCompletion is the inverse of BuildCompletion. Actions outside
// the closed set are described by kind only.
func DescribeCompletion(c CompletionAction) CompletionSpec {
	switch act := c.(type) {
	case nil:
		return CompletionSpec{}
	case HouseComplete:
		return CompletionSpec{Kind: CompletionHouse, Amount: act.ExtraWorkers}
	case YieldBoost:
		return CompletionSpec{Kind: CompletionBoost, Amount: act.Amount, Occupation: act.Occupation}
	case UnlockOccupation:
		spec := CompletionSpec{Kind: CompletionUnlock, Occupation: act.Occupation}
		if act.Action != nil {
			spec.OccupationKind = act.Action.Kind()
			spec.Amount = act.Action.Yield()
		}
		return spec
	}
	return CompletionSpec{Kind: c.Kind()}
}

// buildOptionalCompletion accepts an empty spec as "no effect".
func buildOptionalCompletion(spec CompletionSpec) (CompletionAction, error) {
	if spec.Kind == "" {
		return nil, nil
	}
	return BuildCompletion(spec)
}

// BuildProject turns a spec into a catalog entry.
func BuildProject(spec ProjectSpec) (PossibleProject, error) {
	if spec.Name == "" {
		return PossibleProject{}, fmt.Errorf("project without name: %w", ErrInvalidSpec)
	}
	if spec.Wood < 0 || spec.Metal < 0 || spec.Days < 1 {
		return PossibleProject{}, fmt.Errorf("project %q: costs must be >= 0 and days >= 1: %w", spec.Name, ErrInvalidSpec)
	}
	completion, err := buildOptionalCompletion(spec.Completion)
	if err != nil {
		return PossibleProject{}, fmt.Errorf("project %q: %w", spec.Name, err)
	}
	return NewPossibleProject(spec.Name, spec.Wood, spec.Metal, spec.Days, completion), nil
}

// DescribeProject is the inverse of BuildProject.
func DescribeProject(pp PossibleProject) ProjectSpec {
	return ProjectSpec{
		Name:       pp.Name,
		Wood:       pp.WoodCost,
		Metal:      pp.MetalCost,
		Days:       pp.DaysToComplete,
		Completion: DescribeCompletion(pp.Completion),
	}
}

// Setup is everything needed to found a village.
type Setup struct {
	Name           string           `yaml:"name"`
	Food           int              `yaml:"food"`
	Wood           int              `yaml:"wood"`
	Metal          int              `yaml:"metal"`
	MaxWorkers     int              `yaml:"max_workers"`
	DeathThreshold int              `yaml:"death_threshold"`
	Buildings      []string         `yaml:"buildings"`
	Occupations    []OccupationSpec `yaml:"occupations"`
	Projects       []ProjectSpec    `yaml:"projects"`
}

// DefaultSetup returns the standard village: three houses, the four
// occupations and five possible projects ending in the castle.
func DefaultSetup() Setup {
	return Setup{
		Name:           "Hamlet",
		Food:           DefaultFood,
		MaxWorkers:     DefaultMaxWorkers,
		DeathThreshold: agents.DefaultDeathThreshold,
		Buildings:      []string{"House", "House", "House"},
		Occupations: []OccupationSpec{
			{Name: "farmer", Kind: KindFarmer, Yield: DefaultFoodPerDay},
			{Name: "lumberjack", Kind: KindLumberjack, Yield: DefaultWoodPerDay},
			{Name: "miner", Kind: KindMiner, Yield: DefaultMetalPerDay},
			{Name: "builder", Kind: KindBuilder},
		},
		Projects: []ProjectSpec{
			{Name: "House", Wood: 5, Metal: 0, Days: 3,
				Completion: CompletionSpec{Kind: CompletionHouse, Amount: DefaultHouseCapacity}},
			{Name: "Woodmill", Wood: 5, Metal: 1, Days: 5,
				Completion: CompletionSpec{Kind: CompletionBoost, Occupation: "lumberjack", Amount: 1}},
			{Name: "Quarry", Wood: 3, Metal: 5, Days: 7,
				Completion: CompletionSpec{Kind: CompletionBoost, Occupation: "miner", Amount: 2}},
			{Name: "Farm", Wood: 5, Metal: 2, Days: 5,
				Completion: CompletionSpec{Kind: CompletionBoost, Occupation: "farmer", Amount: 5}},
			{Name: "Castle", Wood: 50, Metal: 50, Days: 50,
				Completion: CompletionSpec{Kind: CompletionCastle}},
		},
	}
}

// New founds a village from a setup. Catalog entries are validated here so
// a bad configuration fails before the first day.
func New(setup Setup) (*Village, error) {
	v := NewVillage()
	v.Name = setup.Name
	v.Resources = economy.Stockpile{Food: setup.Food, Wood: setup.Wood, Metal: setup.Metal}
	v.Resources.Clamp()
	if setup.MaxWorkers > 0 {
		v.MaxWorkers = setup.MaxWorkers
	}
	if setup.DeathThreshold > 0 {
		v.DeathThreshold = setup.DeathThreshold
	}
	v.Buildings = slices.Clone(setup.Buildings)

	for _, spec := range setup.Occupations {
		if spec.Name == "" {
			return nil, fmt.Errorf("occupation without name: %w", ErrInvalidSpec)
		}
		if _, dup := v.Occupations[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate occupation %q: %w", spec.Name, ErrInvalidSpec)
		}
		action, err := BuildOccupation(spec)
		if err != nil {
			return nil, err
		}
		v.RegisterOccupation(spec.Name, action)
	}
	for _, spec := range setup.Projects {
		if _, dup := v.PossibleProjects[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate project %q: %w", spec.Name, ErrInvalidSpec)
		}
		pp, err := BuildProject(spec)
		if err != nil {
			return nil, err
		}
		v.RegisterProject(pp)
	}
	return v, nil
}

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}
