package journal

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	lib "github.com/Nakaner/mapillary-tools"
)

const (
	StatusTagged  = "tagged"
	StatusSkipped = "skipped"
)

var _ lib.Recorder = (*DB)(nil)

// DB wraps the SQLite connection with serialized writes.
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// Run is one journal run row.
type Run struct {
	ID            string
	Started       time.Time
	Finished      *time.Time
	Images        int
	ClockOffset   time.Duration
	Interval      time.Duration
	BearingOffset float64
}

// Entry is one per-image row.
type Entry struct {
	RunID       string
	Path        string
	Status      string
	CaptureTime *time.Time
	RefinedTime *time.Time
	Latitude    *float64
	Longitude   *float64
	Elevation   *float64
	Bearing     *float64
	Reason      string
}

// New opens or creates the journal at path.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return db, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started DATETIME NOT NULL,
		finished DATETIME,
		images INTEGER NOT NULL DEFAULT 0,
		clock_offset_ns INTEGER NOT NULL DEFAULT 0,
		interval_ns INTEGER NOT NULL DEFAULT 0,
		bearing_offset REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		path TEXT NOT NULL,
		status TEXT NOT NULL,
		capture_time DATETIME,
		refined_time DATETIME,
		latitude REAL,
		longitude REAL,
		elevation REAL,
		bearing REAL,
		reason TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_path ON results(path);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// StartRun inserts the run row with the batch parameters.
func (db *DB) StartRun(runID string, started time.Time, images int, opts lib.Options) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO runs (id, started, images, clock_offset_ns, interval_ns, bearing_offset)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, started.UTC(), images, int64(opts.ClockOffset), int64(opts.Interval), opts.BearingOffset)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun stamps the end time of a run.
func (db *DB) FinishRun(runID string, finished time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`UPDATE runs SET finished = ? WHERE id = ?`, finished.UTC(), runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RecordTagged stores the written fix of an image.
func (db *DB) RecordTagged(runID string, t lib.Tagged) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var elevation sql.NullFloat64
	if t.Fix.Elevation != nil {
		elevation = sql.NullFloat64{Float64: *t.Fix.Elevation, Valid: true}
	}
	_, err := db.conn.Exec(`
		INSERT INTO results (run_id, path, status, capture_time, refined_time, latitude, longitude, elevation, bearing)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, t.Path, StatusTagged, t.CaptureTime.UTC(), t.RefinedTime.UTC(),
		t.Fix.Latitude, t.Fix.Longitude, elevation, t.Fix.Bearing)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// RecordSkipped stores a skipped image and its reason.
func (db *DB) RecordSkipped(runID string, s lib.Skip) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	reason := ""
	if s.Reason != nil {
		reason = s.Reason.Error()
	}
	_, err := db.conn.Exec(`
		INSERT INTO results (run_id, path, status, reason)
		VALUES (?, ?, ?, ?)
	`, runID, s.Path, StatusSkipped, reason)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// Runs returns all runs, newest first.
func (db *DB) Runs() ([]Run, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id, started, finished, images, clock_offset_ns, interval_ns, bearing_offset
		FROM runs ORDER BY started DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			finished   sql.NullTime
			offset, iv int64
		)
		if err := rows.Scan(&r.ID, &r.Started, &finished, &r.Images, &offset, &iv, &r.BearingOffset); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.ClockOffset = time.Duration(offset)
		r.Interval = time.Duration(iv)
		if finished.Valid {
			f := finished.Time
			r.Finished = &f
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results returns the per-image rows of a run in insertion order.
func (db *DB) Results(runID string) ([]Entry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT run_id, path, status, capture_time, refined_time, latitude, longitude, elevation, bearing, reason
		FROM results WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                      Entry
			captured, refined      sql.NullTime
			lat, lon, ele, bearing sql.NullFloat64
		)
		if err := rows.Scan(&e.RunID, &e.Path, &e.Status, &captured, &refined,
			&lat, &lon, &ele, &bearing, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		e.CaptureTime = timePtr(captured)
		e.RefinedTime = timePtr(refined)
		e.Latitude = floatPtr(lat)
		e.Longitude = floatPtr(lon)
		e.Elevation = floatPtr(ele)
		e.Bearing = floatPtr(bearing)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
