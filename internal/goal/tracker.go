// Package goal tracks per-user workout goals and their progress.
//
// UpdateProgress and DeleteGoal address a goal by id alone, exactly like the
// system being replaced. UpdateOwnedProgress and DeleteOwnedGoal add an owner
// filter and are selected by the session when goals.owner_scoped is set.
package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/model"
	"github.com/roach88/fittrack/internal/store"
)

// ErrNotFound is returned when no goal matches.
var ErrNotFound = errors.New("goal not found")

// Tracker owns workout_goals.
type Tracker struct {
	store *store.Store
	log   *zap.Logger
}

// New constructs a Tracker.
func New(st *store.Store, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{store: st, log: log.Named("goal")}
}

// AddGoal records a goal for owner. progress is stored as given; values
// outside [0, 100] are accepted.
func (t *Tracker) AddGoal(ctx context.Context, owner, description string, progress float64) (model.GoalID, error) {
	id, err := t.store.Insert(ctx,
		"INSERT INTO workout_goals (username, goal_name, progress) VALUES (?, ?, ?)",
		owner, description, progress)
	if err != nil {
		return 0, fmt.Errorf("add goal: %w", err)
	}
	t.log.Info("goal added", zap.String("owner", owner), zap.Int64("goal_id", id))
	return model.GoalID(id), nil
}

// ListGoals returns owner's goals in insertion order.
func (t *Tracker) ListGoals(ctx context.Context, owner string) ([]model.WorkoutGoal, error) {
	goals, err := store.Select(ctx, t.store, `
		SELECT goal_id, username, goal_name, progress
		FROM workout_goals
		WHERE username = ?
		ORDER BY goal_id ASC
	`, scanGoal, owner)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// ViewProgress returns (name, progress) for each of owner's goals.
func (t *Tracker) ViewProgress(ctx context.Context, owner string) ([]model.GoalProgress, error) {
	progress, err := store.Select(ctx, t.store, `
		SELECT goal_name, progress
		FROM workout_goals
		WHERE username = ?
		ORDER BY goal_id ASC
	`, func(rows *sql.Rows) (model.GoalProgress, error) {
		var p model.GoalProgress
		err := rows.Scan(&p.Name, &p.Progress)
		return p, err
	}, owner)
	if err != nil {
		return nil, fmt.Errorf("view progress: %w", err)
	}
	return progress, nil
}

// UpdateProgress sets the progress of goal id, whoever owns it.
func (t *Tracker) UpdateProgress(ctx context.Context, id model.GoalID, progress float64) error {
	n, err := t.store.Exec(ctx,
		"UPDATE workout_goals SET progress = ? WHERE goal_id = ?", progress, int64(id))
	return t.affected("update goal", id, n, err)
}

// UpdateOwnedProgress sets the progress of goal id only if owner owns it.
func (t *Tracker) UpdateOwnedProgress(ctx context.Context, owner string, id model.GoalID, progress float64) error {
	n, err := t.store.Exec(ctx,
		"UPDATE workout_goals SET progress = ? WHERE goal_id = ? AND username = ?", progress, int64(id), owner)
	return t.affected("update goal", id, n, err)
}

// DeleteGoal removes goal id, whoever owns it.
func (t *Tracker) DeleteGoal(ctx context.Context, id model.GoalID) error {
	n, err := t.store.Exec(ctx,
		"DELETE FROM workout_goals WHERE goal_id = ?", int64(id))
	return t.affected("delete goal", id, n, err)
}

// DeleteOwnedGoal removes goal id only if owner owns it.
func (t *Tracker) DeleteOwnedGoal(ctx context.Context, owner string, id model.GoalID) error {
	n, err := t.store.Exec(ctx,
		"DELETE FROM workout_goals WHERE goal_id = ? AND username = ?", int64(id), owner)
	return t.affected("delete goal", id, n, err)
}

func (t *Tracker) affected(op string, id model.GoalID, n int64, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	}
	t.log.Info(op, zap.Int64("goal_id", int64(id)))
	return nil
}

func scanGoal(rows *sql.Rows) (model.WorkoutGoal, error) {
	var g model.WorkoutGoal
	var id int64
	err := rows.Scan(&id, &g.Username, &g.Name, &g.Progress)
	g.ID = model.GoalID(id)
	return g, err
}
