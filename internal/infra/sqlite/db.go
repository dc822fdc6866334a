// Package sqlite provides SQLite-based persistent storage for PulseFit.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Per-user progression state. version backs the optimistic
		// concurrency check in UpdateUser/SaveUser.
		`CREATE TABLE IF NOT EXISTS users (
			id                TEXT PRIMARY KEY,
			experience_points INTEGER NOT NULL DEFAULT 0,
			current_level     INTEGER NOT NULL DEFAULT 1,
			xp_to_next_level  INTEGER NOT NULL DEFAULT 0,
			current_streak    INTEGER NOT NULL DEFAULT 0,
			longest_streak    INTEGER NOT NULL DEFAULT 0,
			last_workout_at   INTEGER,
			freeze_uses       INTEGER NOT NULL DEFAULT 0,
			freeze_month      TEXT NOT NULL DEFAULT '',
			freeze_day        INTEGER,
			lives_remaining   INTEGER NOT NULL DEFAULT 5,
			lives_refill_at   INTEGER,
			total_workouts    INTEGER NOT NULL DEFAULT 0,
			total_minutes     INTEGER NOT NULL DEFAULT 0,
			created_at        INTEGER NOT NULL,
			version           INTEGER NOT NULL DEFAULT 0
		)`,

		// Completion log. day is the UTC calendar day ("YYYY-MM-DD") and
		// feeds first-of-day, category and perfect-week queries.
		`CREATE TABLE IF NOT EXISTS workouts (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			category         TEXT NOT NULL DEFAULT '',
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			perfect          BOOLEAN DEFAULT 0,
			completed_at     INTEGER NOT NULL,
			day              TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_user_day ON workouts(user_id, day)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_user_category ON workouts(user_id, category)`,

		// Append-only unlock facts; the composite key makes unlocking
		// insert-if-absent.
		`CREATE TABLE IF NOT EXISTS achievement_unlocks (
			user_id        TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			unlocked_at    INTEGER NOT NULL,
			PRIMARY KEY (user_id, achievement_id)
		)`,

		// Weekly leaderboard buckets, keyed by (user, ISO week Monday).
		// rowid preserves insertion order for stable tie-breaking.
		`CREATE TABLE IF NOT EXISTS leaderboard (
			user_id         TEXT NOT NULL,
			week_start      INTEGER NOT NULL,
			weekly_xp       INTEGER NOT NULL DEFAULT 0,
			weekly_workouts INTEGER NOT NULL DEFAULT 0,
			weekly_minutes  INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, week_start)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_week ON leaderboard(week_start, weekly_xp)`,

		// XP award rule rows, seeded from the default table on first run.
		`CREATE TABLE IF NOT EXISTS xp_rules (
			activity TEXT PRIMARY KEY,
			base_xp  INTEGER NOT NULL,
			active   BOOLEAN NOT NULL DEFAULT 1
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func timeFromNullable(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.Unix(v.Int64, 0).UTC()
}

// dayKey formats a timestamp as its UTC calendar day.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
