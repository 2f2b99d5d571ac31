package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers inspect history while runs are being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prediction_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			run_trigger   TEXT,
			outcome       TEXT,
			series_last   INTEGER,
			observations  INTEGER,
			input_date    INTEGER,
			input_close   REAL,
			input_ma20    REAL,
			input_ma50    REAL,
			predicted     REAL,
			message       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON prediction_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO prediction_runs
		(timestamp, run_trigger, outcome, series_last, observations,
		 input_date, input_close, input_ma20, input_ma50, predicted, message)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), rec.Trigger, rec.Outcome, unixOrZero(rec.SeriesLast), rec.Observations,
		unixOrZero(rec.InputDate), rec.InputClose, rec.InputMA20, rec.InputMA50,
		rec.Predicted, rec.Message,
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, run_trigger, outcome, series_last, observations,
		input_date, input_close, input_ma20, input_ma50, predicted, message
		FROM prediction_runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var ts, seriesLast, inputDate int64
		if err := rows.Scan(&ts, &rec.Trigger, &rec.Outcome, &seriesLast, &rec.Observations,
			&inputDate, &rec.InputClose, &rec.InputMA20, &rec.InputMA50, &rec.Predicted, &rec.Message); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.SeriesLast = fromUnix(seriesLast)
		rec.InputDate = fromUnix(inputDate)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}
