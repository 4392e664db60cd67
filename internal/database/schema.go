package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"matchboard/internal/config"
	"matchboard/internal/middleware"
	"matchboard/internal/models"

	"gorm.io/gorm"
)

// Schema modes accepted by DB_SCHEMA_MODE. An empty mode means hybrid.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// PersistentModels lists the GORM models whose tables the dashboard reads.
func PersistentModels() []interface{} {
	return []interface{}{&models.User{}, &models.Match{}, &models.Message{}}
}

// schemaPlan is what DB_SCHEMA_MODE resolves to for one environment.
type schemaPlan struct {
	mode string
	sql  bool
	auto bool
}

// planSchema resolves the schema mode. AutoMigrate never runs in
// production; asking for it there explicitly is an error.
func planSchema(cfg *config.Config) (schemaPlan, error) {
	plan := schemaPlan{mode: cfg.DBSchemaMode}
	if plan.mode == "" {
		plan.mode = SchemaModeHybrid
	}
	prod := cfg.IsProduction()

	switch plan.mode {
	case SchemaModeSQL:
		plan.sql = true
	case SchemaModeHybrid:
		plan.sql, plan.auto = true, !prod
	case SchemaModeAuto:
		if prod {
			return schemaPlan{}, fmt.Errorf("DB_SCHEMA_MODE=auto is not allowed in %q", cfg.Env)
		}
		plan.auto = true
	default:
		return schemaPlan{}, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", plan.mode)
	}
	return plan, nil
}

// SchemaStatus describes what ApplySchema would do against a database.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

// ApplySchema brings the database up to date: embedded SQL migrations
// first, then GORM AutoMigrate, each only when the plan calls for it.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.sql {
		set, err := Migrations()
		if err != nil {
			return err
		}
		if _, err := RunMigrations(ctx, db, set); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if !plan.auto {
		return nil
	}

	middleware.Logger.Info("Auto-migrating dashboard tables",
		slog.String("mode", plan.mode), slog.String("env", cfg.Env))
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// GetSchemaStatus reports the plan and, when SQL migrations are part of
// it, which embedded migrations have not been applied yet.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}
	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		WillRunSQL:         plan.sql,
		WillRunAutoMigrate: plan.auto,
	}
	if !plan.sql {
		return status, nil
	}

	set, err := Migrations()
	if err != nil {
		return nil, err
	}
	store, err := NewMigrationStore(ctx, db)
	if err != nil {
		return nil, err
	}
	if status.AppliedVersions, err = store.GetAppliedMigrations(ctx); err != nil {
		return nil, err
	}
	for _, m := range set {
		if !slices.Contains(status.AppliedVersions, m.Version) {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}
	return status, nil
}
