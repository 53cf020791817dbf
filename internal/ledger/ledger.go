// Package ledger records exercise logs and their completion state.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/model"
	"github.com/roach88/fittrack/internal/store"
)

var (
	// ErrInvalidNumericInput is returned when duration, sets, reps or weight
	// cannot be parsed as their declared type.
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	// ErrNotFound is returned when no log matches both the id and the owner.
	ErrNotFound = errors.New("no exercise log found with the provided log id")
)

// ExerciseInput carries an exercise as entered. Numeric fields are kept as
// text so LogExercise can reject values that do not parse.
type ExerciseInput struct {
	Name     string
	Date     string
	Duration string // integer minutes
	Sets     string // integer
	Reps     string // integer
	Weight   string // real
	Notes    string
}

// Ledger owns exercise_logs.
type Ledger struct {
	store *store.Store
	log   *zap.Logger
}

// New constructs a Ledger.
func New(st *store.Store, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{store: st, log: log.Named("ledger")}
}

// LogExercise validates in and records it for owner with completed=false.
func (l *Ledger) LogExercise(ctx context.Context, owner string, in ExerciseInput) (model.LogID, error) {
	duration, err := parseInt("duration", in.Duration)
	if err != nil {
		return 0, err
	}
	sets, err := parseInt("sets", in.Sets)
	if err != nil {
		return 0, err
	}
	reps, err := parseInt("reps", in.Reps)
	if err != nil {
		return 0, err
	}
	weight, err := parseFloat("weight", in.Weight)
	if err != nil {
		return 0, err
	}

	id, err := l.store.Insert(ctx, `
		INSERT INTO exercise_logs
		(username, exercise_name, date, duration, sets, reps, weight, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		owner,
		in.Name,
		in.Date,
		duration,
		sets,
		reps,
		weight,
		in.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("log exercise: %w", err)
	}

	l.log.Info("exercise logged", zap.String("owner", owner), zap.Int64("log_id", id))
	return model.LogID(id), nil
}

// ListLogs returns owner's logs in insertion order.
// Returns an empty slice (not nil) when owner has none.
func (l *Ledger) ListLogs(ctx context.Context, owner string) ([]model.ExerciseLog, error) {
	logs, err := store.Select(ctx, l.store, `
		SELECT log_id, username, exercise_name, date, duration, sets, reps, weight, notes, completed
		FROM exercise_logs
		WHERE username = ?
		ORDER BY log_id ASC
	`, scanLog, owner)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// MarkCompleted sets completed on the log matching both logID and owner.
// A log that is absent and a log owned by someone else are indistinguishable:
// both return ErrNotFound.
func (l *Ledger) MarkCompleted(ctx context.Context, owner string, logID model.LogID) error {
	n, err := l.store.Exec(ctx,
		"UPDATE exercise_logs SET completed = 1 WHERE log_id = ? AND username = ?", int64(logID), owner)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mark completed %d: %w", logID, ErrNotFound)
	}
	l.log.Info("exercise completed", zap.String("owner", owner), zap.Int64("log_id", int64(logID)))
	return nil
}

func scanLog(rows *sql.Rows) (model.ExerciseLog, error) {
	var entry model.ExerciseLog
	var id int64
	err := rows.Scan(
		&id,
		&entry.Username,
		&entry.ExerciseName,
		&entry.Date,
		&entry.Duration,
		&entry.Sets,
		&entry.Reps,
		&entry.Weight,
		&entry.Notes,
		&entry.Completed,
	)
	entry.ID = model.LogID(id)
	return entry, err
}

func parseInt(field, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidNumericInput, field, value)
	}
	return n, nil
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number, got %q", ErrInvalidNumericInput, field, value)
	}
	return f, nil
}
