package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS meal_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  log_date TEXT NOT NULL,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast', 'lunch', 'dinner', 'snack')),
  food_label TEXT NOT NULL,
  portion_size TEXT NOT NULL CHECK(portion_size IN ('small', 'medium', 'large')),
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meal_logs_user_date ON meal_logs(user_id, log_date);

CREATE TABLE IF NOT EXISTS workout_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  log_date TEXT NOT NULL,
  body_part TEXT NOT NULL,
  purpose TEXT NOT NULL,
  tool TEXT NOT NULL,
  exercise_name TEXT NOT NULL,
  sets INTEGER CHECK(sets > 0),
  reps INTEGER CHECK(reps > 0),
  weight_kg REAL CHECK(weight_kg >= 0),
  duration_minutes INTEGER CHECK(duration_minutes > 0),
  intensity TEXT NOT NULL DEFAULT 'medium' CHECK(intensity IN ('low', 'medium', 'high')),
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workout_logs_user_date ON workout_logs(user_id, log_date);
`,
	},
	{
		version: 2,
		name:    "body_tracking",
		sql: `
CREATE TABLE IF NOT EXISTS body_metrics (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  log_date TEXT NOT NULL,
  weight_kg REAL CHECK(weight_kg > 0),
  body_fat_pct REAL CHECK(body_fat_pct >= 0 AND body_fat_pct <= 100),
  created_at TEXT NOT NULL,
  CHECK(weight_kg IS NOT NULL OR body_fat_pct IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_body_metrics_user_date ON body_metrics(user_id, log_date);

CREATE TABLE IF NOT EXISTS goals (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  d_day TEXT,
  target_weight_kg REAL CHECK(target_weight_kg > 0),
  target_body_fat REAL CHECK(target_body_fat >= 0 AND target_body_fat <= 100),
  weekly_routine_target INTEGER NOT NULL CHECK(weekly_routine_target >= 1),
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_goals_user_created ON goals(user_id, created_at);
`,
	},
	{
		version: 3,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}

// SchemaVersion reports the highest applied migration version.
func SchemaVersion(db *sql.DB) (int, error) {
	var version sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(version.Int64), nil
}
