// Package storage provides SQLite-based persistence for heist runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/loop-heist/internal/sim"
)

// MaxHandleLength is the longest handle kept on the board, in runes.
const MaxHandleLength = 64

// DefaultHandle is used when the player leaves the handle empty.
const DefaultHandle = "Player"

// ErrPartialRun is returned when a run that skipped levels is submitted
// to the best-time board.
var ErrPartialRun = errors.New("storage: only full runs are ranked")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunResult is one finished (or abandoned) playthrough.
type RunResult struct {
	ID              int64
	RunID           string
	Handle          string
	LevelsCompleted int
	LevelCount      int
	Loops           int
	Failures        int
	Elapsed         time.Duration
	FullRun         bool
	CreatedAt       time.Time
}

// LevelClear is one won level within a run.
type LevelClear struct {
	ID        int64
	RunID     string
	LevelID   string
	Loops     int
	Failures  int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// BestTime is a handle's fastest full run.
type BestTime struct {
	Handle    string
	RunID     string
	Elapsed   time.Duration
	Loops     int
	Failures  int
	UpdatedAt time.Time
}

// NewRunResult captures the totals of a playthrough under a handle.
func NewRunResult(handle string, pt *sim.Playthrough) RunResult {
	totals := pt.Totals()
	return RunResult{
		RunID:           pt.ID(),
		Handle:          NormalizeHandle(handle),
		LevelsCompleted: totals.LevelsCompleted,
		LevelCount:      pt.LevelCount(),
		Loops:           totals.Loops,
		Failures:        totals.Failures,
		Elapsed:         totals.Elapsed,
		FullRun:         pt.FullRun(),
	}
}

// NormalizeHandle trims the handle and cuts it to MaxHandleLength runes.
// An empty handle becomes DefaultHandle.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return DefaultHandle
	}
	if utf8.RuneCountInString(handle) > MaxHandleLength {
		handle = strings.TrimSpace(string([]rune(handle)[:MaxHandleLength]))
	}
	return handle
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

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
			run_id TEXT NOT NULL UNIQUE,
			handle TEXT NOT NULL,
			levels_completed INTEGER NOT NULL DEFAULT 0,
			level_count INTEGER NOT NULL DEFAULT 0,
			loops INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			full_run INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_handle ON runs(handle);

		CREATE TABLE IF NOT EXISTS level_clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			loops INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_clears_run ON level_clears(run_id);
		CREATE INDEX IF NOT EXISTS idx_level_clears_level ON level_clears(level_id, elapsed_ms);

		CREATE TABLE IF NOT EXISTS best_times (
			handle TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			loops INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_best_times_elapsed ON best_times(elapsed_ms);
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

// SaveRun records a run in the history. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, handle, levels_completed, level_count, loops, failures, elapsed_ms, full_run)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		NormalizeHandle(run.Handle),
		run.LevelsCompleted,
		run.LevelCount,
		run.Loops,
		run.Failures,
		run.Elapsed.Milliseconds(),
		run.FullRun,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveLevelClear records a won level. Returns the ID of the inserted record.
func (s *Store) SaveLevelClear(lc LevelClear) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO level_clears (run_id, level_id, loops, failures, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		lc.RunID,
		lc.LevelID,
		lc.Loops,
		lc.Failures,
		lc.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SubmitBest offers a run to the best-time board. Only full runs are
// accepted, and a handle's entry is replaced only by a faster run.
// It reports whether the board changed.
func (s *Store) SubmitBest(run RunResult) (bool, error) {
	if !run.FullRun {
		return false, ErrPartialRun
	}

	result, err := s.db.Exec(
		`INSERT INTO best_times (handle, run_id, elapsed_ms, loops, failures)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(handle) DO UPDATE SET
			run_id = excluded.run_id,
			elapsed_ms = excluded.elapsed_ms,
			loops = excluded.loops,
			failures = excluded.failures,
			updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.elapsed_ms < best_times.elapsed_ms`,
		NormalizeHandle(run.Handle),
		run.RunID,
		run.Elapsed.Milliseconds(),
		run.Loops,
		run.Failures,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot submit best time: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}

	return n > 0, nil
}

// BestTimes retrieves the fastest full runs, one per handle.
func (s *Store) BestTimes(limit int) ([]BestTime, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT handle, run_id, elapsed_ms, loops, failures, updated_at
		 FROM best_times
		 ORDER BY elapsed_ms ASC, updated_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	defer rows.Close()

	var entries []BestTime
	for rows.Next() {
		var e BestTime
		var elapsedMS int64
		var updatedAt any
		if err := rows.Scan(&e.Handle, &e.RunID, &elapsedMS, &e.Loops, &e.Failures, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, handle, levels_completed, level_count, loops, failures,
		        elapsed_ms, full_run, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var r RunResult
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.Handle,
			&r.LevelsCompleted,
			&r.LevelCount,
			&r.Loops,
			&r.Failures,
			&elapsedMS,
			&r.FullRun,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// LevelClears retrieves the won levels of one run in the order they were won.
func (s *Store) LevelClears(runID string) ([]LevelClear, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, loops, failures, elapsed_ms, created_at
		 FROM level_clears
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level clears: %w", err)
	}
	defer rows.Close()

	var clears []LevelClear
	for rows.Next() {
		var c LevelClear
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&c.ID, &c.RunID, &c.LevelID, &c.Loops, &c.Failures, &elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		c.CreatedAt = parseTime(createdAt)
		clears = append(clears, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return clears, nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID     string
	Clears      int
	FewestLoops int
	BestElapsed time.Duration
	AvgElapsed  time.Duration
	LastCleared time.Time
}

// GetLevelStats retrieves aggregated statistics for every level that has
// been cleared at least once.
func (s *Store) GetLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(loops), MIN(elapsed_ms), AVG(elapsed_ms), MAX(created_at)
		 FROM level_clears
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var bestMS int64
		var avgMS float64
		var lastCleared any
		if err := rows.Scan(&ls.LevelID, &ls.Clears, &ls.FewestLoops, &bestMS, &avgMS, &lastCleared); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.BestElapsed = time.Duration(bestMS) * time.Millisecond
		ls.AvgElapsed = time.Duration(avgMS * float64(time.Millisecond))
		ls.LastCleared = parseTime(lastCleared)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
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
