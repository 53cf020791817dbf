package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Insert runs an INSERT in its own transaction and returns the new row id.
// The transaction is committed before Insert returns.
func (s *Store) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := s.withTx(ctx, "insert", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Exec runs an UPDATE or DELETE in its own transaction and returns the
// number of rows affected. Zero affected rows is not an error here; callers
// decide what it means.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := s.withTx(ctx, "exec", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Query executes a query and returns the resulting rows.
// Callers are responsible for closing the returned rows.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("query", err)
	}
	return rows, nil
}

// Count runs a SELECT COUNT(*) style query and returns the single integer result.
func (s *Store) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}

// Select runs query and scans every row with scan.
// Returns an empty slice (not nil) when no rows match.
func Select[T any](ctx context.Context, s *Store, query string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := s.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, wrap("scan", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate", err)
	}
	return out, nil
}

// withTx runs fn in a transaction and commits it.
// Any error, including a failed commit, leaves the transaction rolled back.
func (s *Store) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &Error{Op: op + ": begin", Err: err}
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		s.log.Debug("statement failed", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &Error{Op: op + ": commit", Err: err}
	}
	return nil
}
