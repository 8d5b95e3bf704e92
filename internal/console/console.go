// Package console is the interactive front end: a line-oriented command
// loop plus the save and load prompts.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hamlet/internal/engine"
	"github.com/talgya/hamlet/internal/persistence"
)

// maxDaysPerCommand caps a single "day n" request.
const maxDaysPerCommand = 10000

// Console reads commands from in and writes responses to out.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	store   persistence.Store
	village *engine.Village
	engine  *engine.Engine
}

// New creates a console over the given village. eng may be nil.
func New(in io.Reader, out io.Writer, store persistence.Store, v *engine.Village, eng *engine.Engine) *Console {
	if eng == nil {
		eng = engine.NewEngine()
	}
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		store:   store,
		village: v,
		engine:  eng,
	}
}

// Village returns the village currently being played. Load replaces it.
func (c *Console) Village() *engine.Village {
	return c.village
}

// Run processes commands until quit or end of input.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Welcome to %s. Type \"help\" for commands.\n", c.village.Name)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := c.prompt("> ")
		if !ok {
			return c.in.Err()
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, args := strings.ToLower(fields[0]), fields[1:]
		var err error
		switch cmd {
		case "status":
			c.status()
		case "workers":
			c.workers()
		case "projects":
			c.projects()
		case "hire":
			c.hire(args)
		case "build":
			c.build(args)
		case "day":
			c.day(args)
		case "save":
			err = c.Save(ctx)
		case "load":
			err = c.Load(ctx)
		case "help":
			c.help()
		case "quit", "exit":
			c.printf("Farewell.\n")
			return nil
		default:
			c.printf("Unknown command %q. Type \"help\" for commands.\n", cmd)
		}
		if err != nil {
			c.printf("Error: %v\n", err)
		}
	}
}

// Save lists existing saves, asks for a name and confirms before
// overwriting an existing one.
func (c *Console) Save(ctx context.Context) error {
	names, err := c.store.ListVillageNames(ctx)
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}
	c.listNames(names)

	name, ok := c.prompt("Save as: ")
	if !ok || name == "" {
		c.printf("Save cancelled.\n")
		return nil
	}
	if slices.Contains(names, name) {
		answer, ok := c.prompt(fmt.Sprintf("%q already exists. Overwrite? (y/n): ", name))
		if !ok || !strings.EqualFold(answer, "y") {
			c.printf("Save cancelled.\n")
			return nil
		}
	}

	if err := c.store.SaveVillage(ctx, c.village, name); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	c.printf("Saved %q.\n", name)
	return nil
}

// Load lists saves and replaces the current village with the chosen one.
// An unknown name keeps the current village.
func (c *Console) Load(ctx context.Context) error {
	names, err := c.store.ListVillageNames(ctx)
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}
	if len(names) == 0 {
		c.printf("No saved villages.\n")
		return nil
	}
	c.listNames(names)

	name, ok := c.prompt("Load which village: ")
	if !ok || name == "" {
		c.printf("Load cancelled.\n")
		return nil
	}
	// Accept the list number as well as the name.
	if i, err := strconv.Atoi(name); err == nil && i >= 1 && i <= len(names) {
		name = names[i-1]
	}

	v, err := persistence.LoadAndRestore(ctx, c.store, name)
	if errors.Is(err, persistence.ErrNotFound) {
		c.printf("No village named %q.\n", name)
		return nil
	}
	if err != nil {
		return err
	}
	c.village = v
	c.printf("Loaded %q, %s.\n", name, engine.Calendar(v.DaysElapsed))
	return nil
}

func (c *Console) hire(args []string) {
	if len(args) != 2 {
		c.printf("Usage: hire <name> <occupation>\n")
		return
	}
	w, err := c.village.Hire(args[0], args[1])
	switch {
	case errors.Is(err, engine.ErrCapacityFull):
		c.printf("No room for %s: %d/%d workers. Build more housing.\n", args[0], c.village.Population(), c.village.MaxWorkers)
	case errors.Is(err, engine.ErrUnknownOccupation):
		c.printf("Unknown occupation %q. Available: %s\n", args[1], strings.Join(c.occupationNames(), ", "))
	case err != nil:
		c.printf("Cannot hire: %v\n", err)
	default:
		c.printf("Hired %s as %s.\n", w.Name, w.Occupation)
	}
}

func (c *Console) build(args []string) {
	if len(args) == 0 {
		c.printf("Usage: build <project>\n")
		return
	}
	name := strings.Join(args, " ")
	p, err := c.village.StartProject(name)
	switch {
	case errors.Is(err, engine.ErrUnknownProject):
		c.printf("Unknown project %q. Type \"projects\" for the list.\n", name)
	case errors.Is(err, engine.ErrInsufficientResources):
		pp := c.village.PossibleProjects[name]
		c.printf("Not enough materials for %s: needs %d wood and %d metal, have %d and %d.\n",
			name, pp.WoodCost, pp.MetalCost, c.village.Resources.Wood, c.village.Resources.Metal)
	case err != nil:
		c.printf("Cannot build: %v\n", err)
	default:
		c.printf("Started %s, %d days of work.\n", p.Name, p.DaysRemaining)
	}
}

func (c *Console) day(args []string) {
	n := 1
	if len(args) > 0 {
		var err error
		n, err = strconv.Atoi(args[0])
		if err != nil || n < 1 || n > maxDaysPerCommand {
			c.printf("Usage: day [n], with 1 <= n <= %s\n", humanize.Comma(maxDaysPerCommand))
			return
		}
	}
	if c.village.GameOver {
		c.printf("The game is over. Load a save or quit.\n")
		return
	}

	from := c.village.DaysElapsed
	ran := c.engine.Run(c.village, n)
	for _, e := range c.village.Events {
		if e.Day > from {
			c.printf("  %s: %s\n", engine.Calendar(e.Day), e.Description)
		}
	}
	c.printf("%s passed.\n", dayWord(ran))

	switch {
	case c.village.Won:
		c.printf("The castle stands. You won on the %s day!\n", humanize.Ordinal(c.village.DaysElapsed))
	case c.village.GameOver:
		c.printf("Everyone is gone. Game over after %s.\n", dayWord(c.village.DaysElapsed))
	}
}

func (c *Console) help() {
	c.printf(`Commands:
  status                      village overview
  workers                     list workers
  projects                    list projects and what can be built
  hire <name> <occupation>    hire a worker
  build <project>             start a project
  day [n]                     advance one or n days
  save                        save the village
  load                        load a saved village
  quit                        leave
`)
}

func (c *Console) occupationNames() []string {
	names := make([]string, 0, len(c.village.Occupations))
	for name := range c.village.Occupations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Console) listNames(names []string) {
	if len(names) == 0 {
		c.printf("No saved villages yet.\n")
		return
	}
	c.printf("Saved villages:\n")
	for i, name := range names {
		c.printf("  %d. %s\n", i+1, name)
	}
}

// prompt writes label and reads one trimmed line. ok is false at end of input.
func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func dayWord(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}
