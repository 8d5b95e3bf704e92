package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hamlet/internal/agents"
	"github.com/talgya/hamlet/internal/economy"
	"github.com/talgya/hamlet/internal/engine"
)

// SQLiteStore keeps saves in a SQLite file, one row set per village name.
type SQLiteStore struct {
	conn *sqlx.DB
}

// OpenSQLite opens or creates a SQLite database at the given path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer keeps WAL mode simple for a single-player save file.
	conn.SetMaxOpenConns(1)

	db := &SQLiteStore{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("database opened", "path", path)
	return db, nil
}

// Close closes the database connection.
func (db *SQLiteStore) Close() error {
	return db.conn.Close()
}

func (db *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS villages (
		name TEXT PRIMARY KEY,
		food INTEGER NOT NULL,
		wood INTEGER NOT NULL,
		metal INTEGER NOT NULL,
		max_workers INTEGER NOT NULL,
		death_threshold INTEGER NOT NULL,
		days_elapsed INTEGER NOT NULL,
		game_over INTEGER NOT NULL,
		won INTEGER NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workers (
		village TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		occupation TEXT NOT NULL,
		hungry INTEGER NOT NULL,
		days_hungry INTEGER NOT NULL,
		hired_day INTEGER NOT NULL,
		PRIMARY KEY (village, position)
	);

	CREATE TABLE IF NOT EXISTS projects (
		village TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		days_remaining INTEGER NOT NULL,
		started_day INTEGER NOT NULL,
		completion_json TEXT NOT NULL,
		PRIMARY KEY (village, position)
	);

	CREATE TABLE IF NOT EXISTS buildings (
		village TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (village, position)
	);

	CREATE TABLE IF NOT EXISTS occupations (
		village TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		yield INTEGER NOT NULL,
		PRIMARY KEY (village, name)
	);

	CREATE TABLE IF NOT EXISTS possible_projects (
		village TEXT NOT NULL,
		name TEXT NOT NULL,
		wood INTEGER NOT NULL,
		metal INTEGER NOT NULL,
		days INTEGER NOT NULL,
		completion_json TEXT NOT NULL,
		PRIMARY KEY (village, name)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		village TEXT NOT NULL,
		day INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_village ON events(village, id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type villageRow struct {
	Name           string `db:"name"`
	Food           int    `db:"food"`
	Wood           int    `db:"wood"`
	Metal          int    `db:"metal"`
	MaxWorkers     int    `db:"max_workers"`
	DeathThreshold int    `db:"death_threshold"`
	DaysElapsed    int    `db:"days_elapsed"`
	GameOver       bool   `db:"game_over"`
	Won            bool   `db:"won"`
}

type workerRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Occupation string `db:"occupation"`
	Hungry     bool   `db:"hungry"`
	DaysHungry int    `db:"days_hungry"`
	HiredDay   int    `db:"hired_day"`
}

type projectRow struct {
	Name           string `db:"name"`
	DaysRemaining  int    `db:"days_remaining"`
	StartedDay     int    `db:"started_day"`
	CompletionJSON string `db:"completion_json"`
}

type possibleProjectRow struct {
	Name           string `db:"name"`
	Wood           int    `db:"wood"`
	Metal          int    `db:"metal"`
	Days           int    `db:"days"`
	CompletionJSON string `db:"completion_json"`
}

// ListVillageNames returns every saved village name.
func (db *SQLiteStore) ListVillageNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := db.conn.SelectContext(ctx, &names, "SELECT name FROM villages ORDER BY name")
	return names, err
}

// SaveVillage writes the village under name (full replace).
func (db *SQLiteStore) SaveVillage(ctx context.Context, v *engine.Village, name string) error {
	snap := v.Snapshot()

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"villages", "workers", "projects", "buildings", "occupations", "possible_projects", "events"} {
		col := "village"
		if table == "villages" {
			col = "name"
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+col+" = ?", name); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO villages
		(name, food, wood, metal, max_workers, death_threshold, days_elapsed, game_over, won, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, snap.Resources.Food, snap.Resources.Wood, snap.Resources.Metal,
		snap.MaxWorkers, snap.DeathThreshold, snap.DaysElapsed, snap.GameOver, snap.Won,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert village %q: %w", name, err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO workers
		(village, position, id, name, occupation, hungry, days_hungry, hired_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, w := range snap.Workers {
		if _, err := stmt.ExecContext(ctx, name, i, w.ID, w.Name, w.Occupation, w.Hungry, w.DaysHungry, w.HiredDay); err != nil {
			return fmt.Errorf("insert worker %s: %w", w.ID, err)
		}
	}

	for i, p := range snap.Projects {
		completion, err := json.Marshal(p.Completion)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO projects
			(village, position, name, days_remaining, started_day, completion_json)
			VALUES (?, ?, ?, ?, ?, ?)`,
			name, i, p.Name, p.DaysRemaining, p.StartedDay, string(completion))
		if err != nil {
			return fmt.Errorf("insert project %q: %w", p.Name, err)
		}
	}

	for i, b := range snap.Buildings {
		if _, err := tx.ExecContext(ctx, "INSERT INTO buildings (village, position, name) VALUES (?, ?, ?)", name, i, b); err != nil {
			return fmt.Errorf("insert building %q: %w", b, err)
		}
	}

	for _, o := range snap.Occupations {
		_, err := tx.ExecContext(ctx, "INSERT INTO occupations (village, name, kind, yield) VALUES (?, ?, ?, ?)",
			name, o.Name, string(o.Kind), o.Yield)
		if err != nil {
			return fmt.Errorf("insert occupation %q: %w", o.Name, err)
		}
	}

	for _, pp := range snap.PossibleProjects {
		completion, err := json.Marshal(pp.Completion)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO possible_projects
			(village, name, wood, metal, days, completion_json)
			VALUES (?, ?, ?, ?, ?, ?)`,
			name, pp.Name, pp.Wood, pp.Metal, pp.Days, string(completion))
		if err != nil {
			return fmt.Errorf("insert possible project %q: %w", pp.Name, err)
		}
	}

	for _, e := range snap.Events {
		_, err := tx.ExecContext(ctx, "INSERT INTO events (village, day, description, category) VALUES (?, ?, ?, ?)",
			name, e.Day, e.Description, e.Category)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("village saved", "name", name, "day", snap.DaysElapsed, "workers", len(snap.Workers))
	return nil
}

// LoadVillage reads the snapshot saved under name.
func (db *SQLiteStore) LoadVillage(ctx context.Context, name string) (*engine.Snapshot, error) {
	var vr villageRow
	err := db.conn.GetContext(ctx, &vr, `SELECT name, food, wood, metal, max_workers, death_threshold,
		days_elapsed, game_over, won FROM villages WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load village %q: %w", name, err)
	}

	snap := &engine.Snapshot{
		Name:           vr.Name,
		Resources:      economy.Stockpile{Food: vr.Food, Wood: vr.Wood, Metal: vr.Metal},
		MaxWorkers:     vr.MaxWorkers,
		DeathThreshold: vr.DeathThreshold,
		DaysElapsed:    vr.DaysElapsed,
		GameOver:       vr.GameOver,
		Won:            vr.Won,
		Workers:        []agents.Worker{},
		Projects:       []engine.ProjectState{},
	}

	var workers []workerRow
	if err := db.conn.SelectContext(ctx, &workers, `SELECT id, name, occupation, hungry, days_hungry, hired_day
		FROM workers WHERE village = ? ORDER BY position`, name); err != nil {
		return nil, fmt.Errorf("load workers: %w", err)
	}
	for _, w := range workers {
		snap.Workers = append(snap.Workers, agents.Worker{
			ID:         w.ID,
			Name:       w.Name,
			Occupation: w.Occupation,
			Hungry:     w.Hungry,
			DaysHungry: w.DaysHungry,
			HiredDay:   w.HiredDay,
		})
	}

	var projects []projectRow
	if err := db.conn.SelectContext(ctx, &projects, `SELECT name, days_remaining, started_day, completion_json
		FROM projects WHERE village = ? ORDER BY position`, name); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	for _, p := range projects {
		ps := engine.ProjectState{Name: p.Name, DaysRemaining: p.DaysRemaining, StartedDay: p.StartedDay}
		if err := json.Unmarshal([]byte(p.CompletionJSON), &ps.Completion); err != nil {
			return nil, fmt.Errorf("decode project %q: %w", p.Name, err)
		}
		snap.Projects = append(snap.Projects, ps)
	}

	if err := db.conn.SelectContext(ctx, &snap.Buildings,
		"SELECT name FROM buildings WHERE village = ? ORDER BY position", name); err != nil {
		return nil, fmt.Errorf("load buildings: %w", err)
	}

	if err := db.conn.SelectContext(ctx, &snap.Occupations,
		"SELECT name, kind, yield FROM occupations WHERE village = ? ORDER BY name", name); err != nil {
		return nil, fmt.Errorf("load occupations: %w", err)
	}

	var possible []possibleProjectRow
	if err := db.conn.SelectContext(ctx, &possible, `SELECT name, wood, metal, days, completion_json
		FROM possible_projects WHERE village = ? ORDER BY name`, name); err != nil {
		return nil, fmt.Errorf("load possible projects: %w", err)
	}
	for _, pp := range possible {
		spec := engine.ProjectSpec{Name: pp.Name, Wood: pp.Wood, Metal: pp.Metal, Days: pp.Days}
		if err := json.Unmarshal([]byte(pp.CompletionJSON), &spec.Completion); err != nil {
			return nil, fmt.Errorf("decode possible project %q: %w", pp.Name, err)
		}
		snap.PossibleProjects = append(snap.PossibleProjects, spec)
	}

	if err := db.conn.SelectContext(ctx, &snap.Events,
		"SELECT day, description, category FROM events WHERE village = ? ORDER BY id", name); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	return snap, nil
}
