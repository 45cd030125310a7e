/*
Package sqlite provides a SQLite-backed implementation of store.Store.

PURPOSE:
  Persists shifts and non-accounting days for the API server and the
  report CLI. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

TIMESTAMP ENCODING:
  Civil timestamps are stored as text ("2006-01-02T15:04" for shifts,
  "2006-01-02" for leave dates). The layouts are lexicographically
  sortable, so range scans are plain string comparisons.

KEY TABLES:
  shifts:               One row per recorded work period
  non_accounting_days:  One row per leave range (single days are ranges
                        with start == end)

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery improves.

USAGE:
  st, err := sqlite.New("./data/worktime.db")   // ":memory:" for tests
  if err != nil { ... }
  defer st.Close()

SEE ALSO:
  - store/store.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ponto/worktime-engine/store"
	"github.com/ponto/worktime-engine/worktime"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shifts (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		description TEXT,
		created_at  TEXT NOT NULL
	);

	-- Hot path: monthly stats list shifts by user and start day
	CREATE INDEX IF NOT EXISTS idx_shifts_user_start
		ON shifts(user_id, start_time);

	CREATE TABLE IF NOT EXISTS non_accounting_days (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		reason     TEXT,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leaves_user_range
		ON non_accounting_days(user_id, start_date, end_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) SaveShift(ctx context.Context, sh worktime.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (id, user_id, start_time, end_time, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			description = excluded.description`,
		sh.ID, sh.UserID,
		sh.StartTime.Format(dateTimeLayout), sh.EndTime.Format(dateTimeLayout),
		sh.Description, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save shift: %w", err)
	}
	return nil
}

func (s *Store) GetShift(ctx context.Context, id string) (*worktime.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, start_time, end_time, description
		FROM shifts WHERE id = ?`, id)
	sh, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return sh, nil
}

func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListShifts(ctx context.Context, userID string, p worktime.Period) ([]worktime.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// The text layout sorts lexicographically, so the day range is a plain
	// string comparison: [start 00:00, end+1d 00:00).
	from := worktime.DayOf(p.Start).Format(dateTimeLayout)
	to := worktime.DayOf(p.End).AddDate(0, 0, 1).Format(dateTimeLayout)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, start_time, end_time, description
		FROM shifts
		WHERE user_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := []worktime.Shift{}
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *sh)
	}
	return shifts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(r rowScanner) (*worktime.Shift, error) {
	var sh worktime.Shift
	var start, end string
	var description sql.NullString
	if err := r.Scan(&sh.ID, &sh.UserID, &start, &end, &description); err != nil {
		return nil, err
	}
	var err error
	if sh.StartTime, err = time.ParseInLocation(dateTimeLayout, start, time.UTC); err != nil {
		return nil, fmt.Errorf("corrupt start_time %q: %w", start, err)
	}
	if sh.EndTime, err = time.ParseInLocation(dateTimeLayout, end, time.UTC); err != nil {
		return nil, fmt.Errorf("corrupt end_time %q: %w", end, err)
	}
	sh.Description = description.String
	return &sh, nil
}

// =============================================================================
// NON-ACCOUNTING DAYS
// =============================================================================

func (s *Store) SaveNonAccountingDay(ctx context.Context, d worktime.NonAccountingDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO non_accounting_days (id, user_id, leave_type, reason, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			leave_type = excluded.leave_type,
			reason = excluded.reason,
			start_date = excluded.start_date,
			end_date = excluded.end_date`,
		d.ID, d.UserID, string(d.Type), d.Reason,
		d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save non-accounting day: %w", err)
	}
	return nil
}

func (s *Store) GetNonAccountingDay(ctx context.Context, id string) (*worktime.NonAccountingDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, leave_type, reason, start_date, end_date
		FROM non_accounting_days WHERE id = ?`, id)
	d, err := scanLeave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get non-accounting day: %w", err)
	}
	return d, nil
}

func (s *Store) DeleteNonAccountingDay(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM non_accounting_days WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete non-accounting day: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListNonAccountingDays(ctx context.Context, userID string, p worktime.Period) ([]worktime.NonAccountingDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Range overlap: a leave is relevant when it starts before the period
	// ends and ends after the period starts.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, leave_type, reason, start_date, end_date
		FROM non_accounting_days
		WHERE user_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date`,
		userID, worktime.DayOf(p.End).Format(dateLayout), worktime.DayOf(p.Start).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list non-accounting days: %w", err)
	}
	defer rows.Close()

	leaves := []worktime.NonAccountingDay{}
	for rows.Next() {
		d, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan non-accounting day: %w", err)
		}
		leaves = append(leaves, *d)
	}
	return leaves, rows.Err()
}

func scanLeave(r rowScanner) (*worktime.NonAccountingDay, error) {
	var d worktime.NonAccountingDay
	var typ, start, end string
	var reason sql.NullString
	if err := r.Scan(&d.ID, &d.UserID, &typ, &reason, &start, &end); err != nil {
		return nil, err
	}
	d.Type = worktime.LeaveType(typ)
	d.Reason = reason.String
	var err error
	if d.StartDate, err = time.ParseInLocation(dateLayout, start, time.UTC); err != nil {
		return nil, fmt.Errorf("corrupt start_date %q: %w", start, err)
	}
	if d.EndDate, err = time.ParseInLocation(dateLayout, end, time.UTC); err != nil {
		return nil, fmt.Errorf("corrupt end_date %q: %w", end, err)
	}
	return &d, nil
}
