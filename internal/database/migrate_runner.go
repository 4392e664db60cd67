package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"matchboard/internal/middleware"

	"gorm.io/gorm"
)

// MigrationStore records which embedded migrations a database has run.
type MigrationStore interface {
	GetAppliedMigrations(ctx context.Context) ([]int, error)
	ApplyMigration(ctx context.Context, m Migration) error
	RevertMigration(ctx context.Context, m Migration) error
}

// MigrationLog is one row of migration_logs.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime;index"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

type migrationStore struct {
	db *gorm.DB
}

// NewMigrationStore ensures migration_logs exists and returns a store over it.
func NewMigrationStore(ctx context.Context, db *gorm.DB) (MigrationStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&MigrationLog{}); err != nil {
		return nil, fmt.Errorf("create migration_logs: %w", err)
	}
	return &migrationStore{db: db}, nil
}

func (s *migrationStore) GetAppliedMigrations(ctx context.Context) ([]int, error) {
	var versions []int
	err := s.db.WithContext(ctx).Model(&MigrationLog{}).Order("version ASC").Pluck("version", &versions).Error
	if err != nil {
		return nil, fmt.Errorf("read migration_logs: %w", err)
	}
	return versions, nil
}

// step runs script and the bookkeeping change in one transaction.
func (s *migrationStore) step(ctx context.Context, m Migration, verb, script string, record func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(script).Error; err != nil {
			return fmt.Errorf("%s %s: %w", verb, m, err)
		}
		if err := record(tx); err != nil {
			return fmt.Errorf("%s %s: update migration_logs: %w", verb, m, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	middleware.Logger.Info("Migration "+verb, slog.Int("version", m.Version), slog.String("name", m.Name))
	return nil
}

func (s *migrationStore) ApplyMigration(ctx context.Context, m Migration) error {
	return s.step(ctx, m, "applied", m.UpScript, func(tx *gorm.DB) error {
		return tx.Create(&MigrationLog{Version: m.Version, Name: m.Name}).Error
	})
}

func (s *migrationStore) RevertMigration(ctx context.Context, m Migration) error {
	return s.step(ctx, m, "rolled back", m.DownScript, func(tx *gorm.DB) error {
		return tx.Where("version = ?", m.Version).Delete(&MigrationLog{}).Error
	})
}

// appliedVersions opens the store and returns it with the recorded versions.
func appliedVersions(ctx context.Context, db *gorm.DB) (MigrationStore, []int, error) {
	store, err := NewMigrationStore(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store, applied, nil
}

// RunMigrations applies, in order, every migration of set not yet recorded
// and returns those it applied. A recorded version missing from set means
// the database is ahead of this binary, and nothing runs.
func RunMigrations(ctx context.Context, db *gorm.DB, set []Migration) ([]Migration, error) {
	store, applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, version := range applied {
		if FindMigration(set, version) == nil {
			return nil, fmt.Errorf("migration_logs has version %06d, which this build does not know", version)
		}
	}

	var ran []Migration
	for _, m := range set {
		if slices.Contains(applied, m.Version) {
			continue
		}
		if err := store.ApplyMigration(ctx, m); err != nil {
			return ran, err
		}
		ran = append(ran, m)
	}
	return ran, nil
}

// RollbackMigration runs the down script of an applied migration.
func RollbackMigration(ctx context.Context, db *gorm.DB, set []Migration, version int) error {
	m := FindMigration(set, version)
	if m == nil {
		return fmt.Errorf("unknown migration version %d", version)
	}
	store, applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %s is not applied", m)
	}
	return store.RevertMigration(ctx, *m)
}
