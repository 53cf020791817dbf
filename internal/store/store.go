package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options configures Open.
type Options struct {
	// Path is the SQLite file, or MemoryPath.
	Path string

	// ResetOnStartup discards any existing database file before opening,
	// so every process starts from an empty store.
	ResetOnStartup bool

	// Logger receives store diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// Store provides durable storage for fittrack entities.
// A Store holds a single connection; callers never issue concurrent operations.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open creates or opens a SQLite database described by opts.
// Applies required pragmas and initializes the schema.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// All failures are returned as *Error.
func Open(ctx context.Context, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("store")

	if opts.Path == "" {
		return nil, &Error{Op: "open", Err: errors.New("database path is required")}
	}

	if opts.ResetOnStartup && opts.Path != MemoryPath {
		if err := removeDatabaseFiles(opts.Path); err != nil {
			return nil, &Error{Op: "reset", Err: err}
		}
		log.Debug("discarded existing database", zap.String("path", opts.Path))
	}

	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &Error{Op: "connect", Err: err}
	}

	// SQLite only supports one writer at a time, and an in-memory database
	// exists per connection, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, &Error{Op: "pragma", Err: err}
	}

	s := &Store{db: db, log: log}
	if err := s.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("store ready", zap.String("path", opts.Path), zap.Bool("reset", opts.ResetOnStartup))
	return s, nil
}

// Initialize creates the entity tables if they do not exist.
// This function is idempotent.
func (s *Store) Initialize(ctx context.Context) error {
	return s.withTx(ctx, "initialize", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("execute schema: %w", err)
		}
		return nil
	})
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// removeDatabaseFiles deletes the database file and its WAL siblings.
func removeDatabaseFiles(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
