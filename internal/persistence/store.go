// Package persistence stores named village saves.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hamlet/internal/config"
	"github.com/talgya/hamlet/internal/engine"
)

// ErrNotFound is returned when no village is saved under a name.
var ErrNotFound = errors.New("village not found")

// Store is the persistence collaborator. The simulation never depends on
// a concrete implementation.
type Store interface {
	// ListVillageNames returns saved names in ascending order.
	ListVillageNames(ctx context.Context) ([]string, error)
	// LoadVillage returns the snapshot saved under name, or ErrNotFound.
	LoadVillage(ctx context.Context, name string) (*engine.Snapshot, error)
	// SaveVillage writes v under name, replacing any previous save.
	SaveVillage(ctx context.Context, v *engine.Village, name string) error
	Close() error
}

// Open returns the store selected by the storage config.
func Open(cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// LoadAndRestore loads a save and rebuilds the live village.
func LoadAndRestore(ctx context.Context, s Store, name string) (*engine.Village, error) {
	snap, err := s.LoadVillage(ctx, name)
	if err != nil {
		return nil, err
	}
	v, err := engine.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore %q: %w", name, err)
	}
	slog.Info("village loaded", "name", name, "day", v.DaysElapsed, "workers", len(v.Workers))
	return v, nil
}
