package console

import (
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hamlet/internal/engine"
)

func (c *Console) status() {
	v := c.village
	c.printf("%s, %s\n", v.Name, engine.Calendar(v.DaysElapsed))
	c.printf("  Food %s  Wood %s  Metal %s\n",
		humanize.Comma(int64(v.Resources.Food)),
		humanize.Comma(int64(v.Resources.Wood)),
		humanize.Comma(int64(v.Resources.Metal)))
	c.printf("  Workers %d/%d, %d hungry\n", v.Population(), v.MaxWorkers, len(v.HungryWorkers()))
	c.printf("  Buildings: %s\n", summarizeBuildings(v.Buildings))
	if len(v.Projects) > 0 {
		c.printf("  Under construction: %d\n", len(v.Projects))
	}
	switch {
	case v.Won:
		c.printf("  The castle is complete. You won!\n")
	case v.GameOver:
		c.printf("  Game over.\n")
	}
}

func (c *Console) workers() {
	if len(c.village.Workers) == 0 {
		c.printf("No workers. Try \"hire <name> <occupation>\".\n")
		return
	}
	for i, w := range c.village.Workers {
		state := "fed"
		if w.Hungry {
			state = "hungry for " + dayWord(w.DaysHungry)
		}
		c.printf("  %d. %-12s %-12s %s (hired %s)\n", i+1, w.Name, w.Occupation, state, engine.Calendar(w.HiredDay))
	}
}

func (c *Console) projects() {
	v := c.village
	if len(v.Projects) > 0 {
		c.printf("Under construction:\n")
		for _, p := range v.Projects {
			c.printf("  %-12s %s of work left\n", p.Name, dayWord(p.DaysRemaining))
		}
	}
	c.printf("Available:\n")
	for _, name := range slices.Sorted(maps.Keys(v.PossibleProjects)) {
		pp := v.PossibleProjects[name]
		mark := " "
		if v.Resources.Afford(pp.WoodCost, pp.MetalCost) {
			mark = "*"
		}
		c.printf(" %s%-12s wood %-4d metal %-4d %s\n", mark, name, pp.WoodCost, pp.MetalCost, dayWord(pp.DaysToComplete))
	}
	c.printf("(* affordable now)\n")
}

// summarizeBuildings renders "House x3, Farm" in first-built order.
func summarizeBuildings(buildings []string) string {
	if len(buildings) == 0 {
		return "none"
	}
	counts := map[string]int{}
	var order []string
	for _, b := range buildings {
		if counts[b] == 0 {
			order = append(order, b)
		}
		counts[b]++
	}
	parts := make([]string, 0, len(order))
	for _, b := range order {
		if n := counts[b]; n > 1 {
			parts = append(parts, b+" x"+humanize.Comma(int64(n)))
		} else {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, ", ")
}
