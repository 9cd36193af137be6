package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/Tiliavir/work-time-tracker/internal/model"
)

// SQLiteStore keeps the record set in a SQLite database, one row per date.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating directories: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: path, log: log}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
        CREATE TABLE IF NOT EXISTS records (
            date          TEXT PRIMARY KEY,
            position      INTEGER NOT NULL,
            start_time    TEXT,
            end_time      TEXT,
            work_duration REAL NOT NULL DEFAULT 0,
            overtime      REAL NOT NULL DEFAULT 0
        )
    `)
	return err
}

// Load reads all rows in their saved order.
func (s *SQLiteStore) Load() []model.DailyRecord {
	records, err := s.load()
	if err != nil {
		s.log.Error().Err(&ReadError{Source: s.path, Err: err}).Msg("loading records failed, starting empty")
		return []model.DailyRecord{}
	}
	return records
}

func (s *SQLiteStore) load() ([]model.DailyRecord, error) {
	rows, err := s.db.Query(`
        SELECT date, start_time, end_time, work_duration, overtime
        FROM records
        ORDER BY position
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.DailyRecord{}
	for rows.Next() {
		var (
			r          model.DailyRecord
			start, end sql.NullString
		)
		if err := rows.Scan(&r.Date, &start, &end, &r.WorkDuration, &r.Overtime); err != nil {
			return nil, err
		}
		if r.StartTime, err = parseNullTime(start); err != nil {
			return nil, fmt.Errorf("record %s: start_time: %w", r.Date, err)
		}
		if r.EndTime, err = parseNullTime(end); err != nil {
			return nil, fmt.Errorf("record %s: end_time: %w", r.Date, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save replaces every row in a single transaction.
func (s *SQLiteStore) Save(records []model.DailyRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("storage error clearing records: %w", err)
	}
	stmt, err := tx.Prepare(`
        INSERT INTO records (date, position, start_time, end_time, work_duration, overtime)
        VALUES (?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("storage error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(r.Date, i, formatNullTime(r.StartTime), formatNullTime(r.EndTime), r.WorkDuration, r.Overtime); err != nil {
			return fmt.Errorf("storage error inserting record %s: %w", r.Date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage error committing records: %w", err)
	}
	s.log.Debug().Str("path", s.path).Int("records", len(records)).Msg("records saved")
	return nil
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
