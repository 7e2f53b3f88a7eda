package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked first; when it exists the schema is considered current.
// Steps run in one transaction, so the sentinel never exists without the rest.
const sentinelTable = "public.waste_entries"

var steps = []migrationStep{
	{
		Name: "create_table_waste_entries",
		SQL: `CREATE TABLE IF NOT EXISTS waste_entries (
  id          UUID             PRIMARY KEY,
  food_item   TEXT             NOT NULL,
  category    TEXT             NOT NULL,
  quantity    DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
  unit        TEXT             NOT NULL,
  quantity_kg DOUBLE PRECISION NOT NULL CHECK (quantity_kg >= 0),
  waste_date  DATE             NOT NULL,
  reason      TEXT             NOT NULL,
  notes       TEXT             NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_waste_entries_waste_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_waste_entries_waste_date ON waste_entries (waste_date);`,
	},
	{
		Name: "create_index_waste_entries_category",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_waste_entries_category ON waste_entries (category);`,
	},
	{
		Name: "create_table_food_images",
		SQL: `CREATE TABLE IF NOT EXISTS food_images (
  id           UUID        PRIMARY KEY,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  food_name    TEXT        NOT NULL,
  category     TEXT        NOT NULL DEFAULT '',
  expiry_days  INTEGER     NOT NULL CHECK (expiry_days > 0),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_food_images_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_food_images_created_at ON food_images (created_at);`,
	},
}

// EnsureMigrated creates the schema unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	start := time.Now()

	log.Info("db_migration_check", zap.String("event", "db_migration_check"), zap.String("status", "starting"))

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("event", "db_migration_failed"),
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			zap.String("event", "db_migration_skip"),
			zap.String("status", "success"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("event", "db_migration_failed"),
			zap.String("status", "error"),
			zap.Error(err),
		)
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("event", "db_migration_failed"),
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db_migration_step",
			zap.String("event", "db_migration_step"),
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	if err := tx.Commit(); err != nil {
		log.Error("db_migration_failed",
			zap.String("event", "db_migration_failed"),
			zap.String("status", "error"),
			zap.Error(err),
		)
		return fmt.Errorf("commit migration: %w", err)
	}

	log.Info("db_migration_success",
		zap.String("event", "db_migration_success"),
		zap.String("status", "success"),
		zap.Int("steps", len(steps)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
