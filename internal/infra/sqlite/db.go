// Package sqlite provides SQLite-based persistent storage for Ekima.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

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
		// Gamification profiles — one row per user, replaced wholesale on put.
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id              TEXT PRIMARY KEY,
			total_xp             INTEGER NOT NULL DEFAULT 0,
			gems                 INTEGER NOT NULL DEFAULT 0,
			coins                INTEGER NOT NULL DEFAULT 0,
			current_streak       INTEGER NOT NULL DEFAULT 0,
			longest_streak       INTEGER NOT NULL DEFAULT 0,
			last_activity        INTEGER,
			goal_day             INTEGER,
			goal_chapters_target INTEGER NOT NULL DEFAULT 0,
			goal_quizzes_target  INTEGER NOT NULL DEFAULT 0,
			goal_minutes_target  INTEGER NOT NULL DEFAULT 0,
			goal_chapters        INTEGER NOT NULL DEFAULT 0,
			goal_quizzes         INTEGER NOT NULL DEFAULT 0,
			goal_minutes         INTEGER NOT NULL DEFAULT 0,
			chapters_completed   INTEGER NOT NULL DEFAULT 0,
			quizzes_completed    INTEGER NOT NULL DEFAULT 0,
			experiments_completed INTEGER NOT NULL DEFAULT 0,
			videos_watched       INTEGER NOT NULL DEFAULT 0,
			perfect_quizzes      INTEGER NOT NULL DEFAULT 0,
			daily_goal_streak    INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_xp ON profiles(total_xp)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_streak ON profiles(current_streak)`,

		// Unlocked achievements — (user, id) is unique, unlock is idempotent.
		`CREATE TABLE IF NOT EXISTS achievements (
			user_id     TEXT NOT NULL,
			id          TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_achievements_at ON achievements(unlocked_at)`,

		// Activity calendar — one row per user per UTC day.
		`CREATE TABLE IF NOT EXISTS activity_days (
			user_id TEXT NOT NULL,
			day     INTEGER NOT NULL,
			PRIMARY KEY (user_id, day)
		)`,

		// Activity log — append-only record of processed events; backs
		// lifetime counters and timeframe-bounded rankings.
		`CREATE TABLE IF NOT EXISTS activity_log (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			type        TEXT NOT NULL,
			source      TEXT NOT NULL DEFAULT '',
			occurred_at INTEGER NOT NULL,
			xp_granted  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_user_ts ON activity_log(user_id, occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_ts ON activity_log(occurred_at)`,
	}

	for i, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
