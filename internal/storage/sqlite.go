// Package storage provides SQLite-based persistence for best times and run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultMode is the mode runs are recorded under unless WithMode says otherwise.
const DefaultMode = "classic"

// Store manages the SQLite database connection for time persistence.
type Store struct {
	db   *sql.DB
	mode string
}

// RunEntry represents a single finished run.
type RunEntry struct {
	ID        int64
	LevelID   string
	Mode      string
	Score     int // Ticks survived
	CreatedAt time.Time
}

// BestEntry is the best time of one level in one mode.
type BestEntry struct {
	LevelID   string
	Mode      string
	Score     int
	UpdatedAt time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Best       int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, mode: DefaultMode}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level_id, mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level_id, mode, score DESC);

		CREATE TABLE IF NOT EXISTS best_times (
			level_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (level_id, mode)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WithMode returns a view of the store that records under mode. The view
// shares the connection; only the original should be closed.
func (s *Store) WithMode(mode string) *Store {
	if mode == "" {
		mode = DefaultMode
	}
	return &Store{db: s.db, mode: mode}
}

// Mode returns the mode this view records under.
func (s *Store) Mode() string {
	return s.mode
}

// BestTime returns the best time for the level, 0 if it was never played.
func (s *Store) BestTime(levelID string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_times WHERE level_id = ? AND mode = ?",
		levelID, s.mode,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	return score, nil
}

// SaveTime records a finished run and raises the level's best time if the
// run beat it.
func (s *Store) SaveTime(levelID string, score int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO runs (level_id, mode, score) VALUES (?, ?, ?)",
		levelID, s.mode, score,
	); err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO best_times (level_id, mode, score) VALUES (?, ?, ?)
		 ON CONFLICT (level_id, mode) DO UPDATE
		 SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.score > best_times.score`,
		levelID, s.mode, score,
	); err != nil {
		return fmt.Errorf("storage: cannot update best time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

// TopRuns retrieves the top N runs for the given level.
// Results are ordered by score descending.
func (s *Store) TopRuns(levelID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, mode, score, created_at
		 FROM runs
		 WHERE level_id = ? AND mode = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		levelID, s.mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Mode, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTimes returns the best time of every level played in this mode,
// best first.
func (s *Store) BestTimes() ([]BestEntry, error) {
	rows, err := s.db.Query(
		`SELECT level_id, mode, score, updated_at
		 FROM best_times
		 WHERE mode = ?
		 ORDER BY score DESC, level_id`,
		s.mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.LevelID, &e.Mode, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearLevel deletes the runs and best time of a level in this mode.
func (s *Store) ClearLevel(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM runs WHERE level_id = ? AND mode = ?", levelID, s.mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM best_times WHERE level_id = ? AND mode = ?", levelID, s.mode); err != nil {
		return fmt.Errorf("storage: cannot clear best time: %w", err)
	}
	return tx.Commit()
}

// Stats retrieves aggregated statistics for a level in this mode.
func (s *Store) Stats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM runs WHERE level_id = ? AND mode = ?`,
		levelID, s.mode,
	).Scan(&stats.Runs, &stats.Best, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
