// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrPlannerNotFound    = fmt.Errorf("planner %w", ErrNotFound)
	ErrEventNotFound      = fmt.Errorf("event %w", ErrNotFound)
	ErrGuestNotFound      = fmt.Errorf("guest %w", ErrNotFound)
	ErrAttendanceNotFound = fmt.Errorf("attendance %w", ErrNotFound)

	ErrUsernameTaken   = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrEmailTaken      = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrGuestEmailTaken = fmt.Errorf("%w: guest email already exists", ErrConflict)
	ErrAlreadyInvited  = fmt.Errorf("%w: guest already invited to event", ErrConflict)
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default
	sqlx.BindDriver(DialectSQLite, sqlx.QUESTION)
}

// Store is the data-access layer. All queries are written with ? placeholders
// and rebound for the active driver.
type Store struct {
	db      *sqlx.DB
	dialect string
	now     func() time.Time
}

// Open connects to the database, verifies the connection and creates the schema
func Open(ctx context.Context, dialect, url string) (*Store, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	switch dialect {
	case DialectSQLite:
		conn, err = sqlx.Open("sqlite", sqliteDSN(url))
		if err == nil {
			// One connection keeps :memory: databases alive and avoids SQLITE_BUSY
			conn.SetMaxOpenConns(1)
		}
	case DialectPostgres:
		conn, err = sqlx.Open("postgres", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}

	return New(conn, dialect), nil
}

// New wraps an existing connection. The schema must already exist.
func New(conn *sqlx.DB, dialect string) *Store {
	return &Store{
		db:      conn,
		dialect: dialect,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// sqliteDSN turns on foreign key enforcement for every pooled connection
func sqliteDSN(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Dialect() string {
	return s.dialect
}

// Ping is used by the health check
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx runs fn in a transaction. Any error from fn rolls everything back.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return translate(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// getOwned loads a single row that must belong to plannerID.
// The query must filter on "<id> = ? AND planner_id = ?" in that order.
// Rows owned by someone else are reported exactly like missing rows.
func getOwned[T any](ctx context.Context, q sqlx.QueryerContext, query string, plannerID, id int64, notFound error) (*T, error) {
	var dest T
	err := sqlx.GetContext(ctx, q, &dest, sqlx.Rebind(bindType(q), query), id, plannerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query row: %w", err)
	}
	return &dest, nil
}

// exists reports whether the query returns at least one row
func exists(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (bool, error) {
	var one int
	err := sqlx.GetContext(ctx, q, &one, sqlx.Rebind(bindType(q), query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query existence: %w", err)
	}
	return true, nil
}

// deleteOwned removes one owned row; cascades are left to the schema
func (s *Store) deleteOwned(ctx context.Context, table string, plannerID, id int64, notFound error) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind("DELETE FROM "+table+" WHERE id = ? AND planner_id = ?"),
		id, plannerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func bindType(q sqlx.QueryerContext) int {
	if d, ok := q.(interface{ DriverName() string }); ok {
		return sqlx.BindType(d.DriverName())
	}
	return sqlx.QUESTION
}

// translate maps driver-level unique violations to ErrConflict
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}
