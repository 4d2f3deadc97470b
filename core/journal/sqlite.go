package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/dockyard/core/model"
)

// SQLiteStore persists records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS time_records (
        id TEXT PRIMARY KEY,
        dock_id TEXT NOT NULL,
        dock_name TEXT NOT NULL,
        start_ms INTEGER NOT NULL,
        end_ms INTEGER NOT NULL,
        label TEXT NOT NULL,
        carrier TEXT NOT NULL,
        trailer TEXT NOT NULL,
        destination TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS time_records_end ON time_records(end_ms);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts the record. Appending the same id twice is ignored.
func (s *SQLiteStore) Append(ctx context.Context, rec model.TimeRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO time_records
        (id, dock_id, dock_name, start_ms, end_ms, label, carrier, trailer, destination)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DockID, rec.DockName, rec.Start.UnixMilli(), rec.End.UnixMilli(),
		rec.Label, rec.Carrier, rec.Trailer, rec.Destination)
	return err
}

// Query returns records matching q, newest first.
func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]model.TimeRecord, error) {
	var args []any
	query := `SELECT id, dock_id, dock_name, start_ms, end_ms, label, carrier, trailer, destination
        FROM time_records WHERE 1=1`
	if !q.Start.IsZero() {
		query += ` AND end_ms >= ?`
		args = append(args, q.Start.UnixMilli())
	}
	if !q.End.IsZero() {
		query += ` AND end_ms <= ?`
		args = append(args, q.End.UnixMilli())
	}
	if q.DockID != "" {
		query += ` AND dock_id = ?`
		args = append(args, q.DockID)
	}
	query += ` ORDER BY end_ms DESC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []model.TimeRecord{}
	for rows.Next() {
		var (
			r              model.TimeRecord
			startMs, endMs int64
		)
		if err := rows.Scan(&r.ID, &r.DockID, &r.DockName, &startMs, &endMs,
			&r.Label, &r.Carrier, &r.Trailer, &r.Destination); err != nil {
			return nil, err
		}
		r.Start = time.UnixMilli(startMs)
		r.End = time.UnixMilli(endMs)
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
