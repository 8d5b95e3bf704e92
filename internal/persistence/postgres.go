package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/talgya/hamlet/internal/engine"
)

// savedVillage is one save row. The snapshot travels as a JSON payload so
// catalog and worker shape changes do not need a migration.
type savedVillage struct {
	Name        string `gorm:"primaryKey;size:128"`
	DaysElapsed int    `gorm:"not null"`
	Workers     int    `gorm:"not null"`
	GameOver    bool   `gorm:"not null"`
	Won         bool   `gorm:"not null"`
	Payload     string `gorm:"type:jsonb;not null"`
	UpdatedAt   time.Time
}

func (savedVillage) TableName() string { return "saved_villages" }

// PostgresStore keeps saves in a Postgres table through gorm.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the saves table.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&savedVillage{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Info("postgres store opened")
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ListVillageNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.WithContext(ctx).
		Model(&savedVillage{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (s *PostgresStore) LoadVillage(ctx context.Context, name string) (*engine.Snapshot, error) {
	var row savedVillage
	err := s.db.WithContext(ctx).
		Where(&savedVillage{Name: name}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var snap engine.Snapshot
	if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	return &snap, nil
}

func (s *PostgresStore) SaveVillage(ctx context.Context, v *engine.Village, name string) error {
	snap := v.Snapshot()
	snap.Name = name
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	row := savedVillage{
		Name:        name,
		DaysElapsed: snap.DaysElapsed,
		Workers:     len(snap.Workers),
		GameOver:    snap.GameOver,
		Won:         snap.Won,
		Payload:     string(payload),
		UpdatedAt:   time.Now(),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	slog.Info("village saved", "name", name, "day", snap.DaysElapsed, "workers", len(snap.Workers))
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
