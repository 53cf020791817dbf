package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/category"
	"github.com/roach88/fittrack/internal/goal"
	"github.com/roach88/fittrack/internal/ledger"
	"github.com/roach88/fittrack/internal/model"
)

// Services are the components a Session dispatches to.
type Services struct {
	Ledger     *ledger.Ledger
	Categories *category.Registry
	Goals      *goal.Tracker

	// OwnerScopedGoals routes goal updates and deletes through the
	// owner-filtered tracker operations.
	OwnerScopedGoals bool
}

// Result is the outcome of a dispatched command. Only the fields relevant
// to Op are set. A list operation always sets its slice, empty when nothing
// matched, so it encodes as [] while the lists of other operations encode
// as null.
type Result struct {
	Op         Op                      `json:"op"`
	ID         int64                   `json:"id,omitempty"`
	Logs       []model.ExerciseLog     `json:"logs"`
	Categories []model.WorkoutCategory `json:"categories"`
	Goals      []model.WorkoutGoal     `json:"goals"`
	Progress   []model.GoalProgress    `json:"progress"`
}

// Session is an authenticated user's handle on the core.
type Session struct {
	ID       string
	Username string

	svc Services
	log *zap.Logger
}

// New creates a session for an already authenticated username.
func New(username string, svc Services, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.Must(uuid.NewV7()).String()
	return &Session{
		ID:       id,
		Username: username,
		svc:      svc,
		log:      log.Named("session").With(zap.String("session_id", id), zap.String("username", username)),
	}
}

// Dispatch runs cmd on behalf of the session user.
// Unknown command types return ErrUnknownOperation; the session stays usable.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	if cmd == nil {
		return Result{}, fmt.Errorf("%w: nil command", ErrUnknownOperation)
	}
	res := Result{Op: cmd.Op()}
	s.log.Debug("dispatch", zap.String("op", string(res.Op)))

	var err error
	switch c := cmd.(type) {
	case LogExercise:
		var id model.LogID
		id, err = s.svc.Ledger.LogExercise(ctx, s.Username, c.ExerciseInput)
		res.ID = int64(id)
	case ListLogs:
		res.Logs, err = s.svc.Ledger.ListLogs(ctx, s.Username)
	case CompleteLog:
		err = s.svc.Ledger.MarkCompleted(ctx, s.Username, c.LogID)
		res.ID = int64(c.LogID)

	case ListCategories:
		res.Categories, err = s.svc.Categories.List(ctx)
	case AddCategory:
		var id model.CategoryID
		id, err = s.svc.Categories.Add(ctx, c.Name)
		res.ID = int64(id)
	case RenameCategory:
		err = s.svc.Categories.Rename(ctx, c.ID, c.Name)
		res.ID = int64(c.ID)
	case DeleteCategory:
		err = s.svc.Categories.Remove(ctx, c.ID)
		res.ID = int64(c.ID)

	case AddGoal:
		var id model.GoalID
		id, err = s.svc.Goals.AddGoal(ctx, s.Username, c.Description, c.Progress)
		res.ID = int64(id)
	case ListGoals:
		res.Goals, err = s.svc.Goals.ListGoals(ctx, s.Username)
	case UpdateGoal:
		if s.svc.OwnerScopedGoals {
			err = s.svc.Goals.UpdateOwnedProgress(ctx, s.Username, c.ID, c.Progress)
		} else {
			err = s.svc.Goals.UpdateProgress(ctx, c.ID, c.Progress)
		}
		res.ID = int64(c.ID)
	case DeleteGoal:
		if s.svc.OwnerScopedGoals {
			err = s.svc.Goals.DeleteOwnedGoal(ctx, s.Username, c.ID)
		} else {
			err = s.svc.Goals.DeleteGoal(ctx, c.ID)
		}
		res.ID = int64(c.ID)
	case ViewProgress:
		res.Progress, err = s.svc.Goals.ViewProgress(ctx, s.Username)

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, cmd.Op())
	}

	if err != nil {
		s.log.Debug("operation failed", zap.String("op", string(res.Op)), zap.Error(err))
		return Result{}, err
	}
	return res, nil
}
