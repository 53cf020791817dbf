package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/fittrack/internal/category"
	"github.com/roach88/fittrack/internal/goal"
	"github.com/roach88/fittrack/internal/ledger"
	"github.com/roach88/fittrack/internal/model"
	"github.com/roach88/fittrack/internal/testutil"
)

func newTestServices(t *testing.T, ownerScoped bool) Services {
	t.Helper()
	st := testutil.NewStore(t)
	testutil.SeedUser(t, st, "alice")
	testutil.SeedUser(t, st, "bobby")
	log := zaptest.NewLogger(t)
	return Services{
		Ledger:           ledger.New(st, log),
		Categories:       category.New(st, log),
		Goals:            goal.New(st, log),
		OwnerScopedGoals: ownerScoped,
	}
}

func mustDispatch(t *testing.T, s *Session, cmd Command) Result {
	t.Helper()
	res, err := s.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	return res
}

type bogusCommand struct{}

func (bogusCommand) Op() Op { return "bogus" }

func TestNew_AssignsSessionID(t *testing.T) {
	svc := newTestServices(t, false)
	a := New("alice", svc, nil)
	b := New("alice", svc, nil)

	assert.Equal(t, "alice", a.Username)
	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDispatch_ExerciseFlow(t *testing.T) {
	s := New("alice", newTestServices(t, false), zaptest.NewLogger(t))

	res := mustDispatch(t, s, LogExercise{ExerciseInput: ledger.ExerciseInput{
		Name: "Row", Date: "2024-01-02", Duration: "20", Sets: "1", Reps: "1", Weight: "0",
	}})
	assert.Equal(t, OpLogExercise, res.Op)
	require.NotZero(t, res.ID)

	mustDispatch(t, s, CompleteLog{LogID: model.LogID(res.ID)})

	list := mustDispatch(t, s, ListLogs{})
	require.Len(t, list.Logs, 1)
	assert.Equal(t, "alice", list.Logs[0].Username)
	assert.True(t, list.Logs[0].Completed)
}

func TestDispatch_CompleteLogScopedToSessionUser(t *testing.T) {
	svc := newTestServices(t, false)
	alice := New("alice", svc, nil)
	bobby := New("bobby", svc, nil)

	res := mustDispatch(t, bobby, LogExercise{ExerciseInput: ledger.ExerciseInput{
		Name: "Row", Date: "2024-01-02", Duration: "20", Sets: "1", Reps: "1", Weight: "0",
	}})

	_, err := alice.Dispatch(context.Background(), CompleteLog{LogID: model.LogID(res.ID)})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	list := mustDispatch(t, alice, ListLogs{})
	assert.Empty(t, list.Logs)
}

func TestDispatch_Categories(t *testing.T) {
	s := New("alice", newTestServices(t, false), nil)

	added := mustDispatch(t, s, AddCategory{Name: "Cardio"})
	mustDispatch(t, s, RenameCategory{ID: model.CategoryID(added.ID), Name: "Strength"})

	list := mustDispatch(t, s, ListCategories{})
	require.Len(t, list.Categories, 1)
	assert.Equal(t, "Strength", list.Categories[0].Name)

	mustDispatch(t, s, DeleteCategory{ID: model.CategoryID(added.ID)})
	_, err := s.Dispatch(context.Background(), DeleteCategory{ID: model.CategoryID(added.ID)})
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestDispatch_Goals(t *testing.T) {
	s := New("alice", newTestServices(t, false), nil)

	added := mustDispatch(t, s, AddGoal{Description: "Run 5k", Progress: 0})
	mustDispatch(t, s, UpdateGoal{ID: model.GoalID(added.ID), Progress: 50})

	progress := mustDispatch(t, s, ViewProgress{})
	assert.Equal(t, []model.GoalProgress{{Name: "Run 5k", Progress: 50}}, progress.Progress)

	goals := mustDispatch(t, s, ListGoals{})
	require.Len(t, goals.Goals, 1)

	mustDispatch(t, s, DeleteGoal{ID: model.GoalID(added.ID)})
	goals = mustDispatch(t, s, ListGoals{})
	assert.Empty(t, goals.Goals)
}

func TestDispatch_GoalsByIDAcrossOwners(t *testing.T) {
	svc := newTestServices(t, false)
	alice := New("alice", svc, nil)
	bobby := New("bobby", svc, nil)

	added := mustDispatch(t, bobby, AddGoal{Description: "Bench 100", Progress: 0})

	// Without owner scoping a goal is addressed by id alone.
	mustDispatch(t, alice, UpdateGoal{ID: model.GoalID(added.ID), Progress: 30})
	progress := mustDispatch(t, bobby, ViewProgress{})
	assert.Equal(t, 30.0, progress.Progress[0].Progress)
}

func TestDispatch_OwnerScopedGoals(t *testing.T) {
	svc := newTestServices(t, true)
	alice := New("alice", svc, nil)
	bobby := New("bobby", svc, nil)

	added := mustDispatch(t, bobby, AddGoal{Description: "Bench 100", Progress: 0})

	_, err := alice.Dispatch(context.Background(), UpdateGoal{ID: model.GoalID(added.ID), Progress: 30})
	assert.ErrorIs(t, err, goal.ErrNotFound)
	_, err = alice.Dispatch(context.Background(), DeleteGoal{ID: model.GoalID(added.ID)})
	assert.ErrorIs(t, err, goal.ErrNotFound)

	progress := mustDispatch(t, bobby, ViewProgress{})
	require.Len(t, progress.Progress, 1)
	assert.Equal(t, 0.0, progress.Progress[0].Progress)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	s := New("alice", newTestServices(t, false), nil)

	_, err := s.Dispatch(context.Background(), bogusCommand{})
	assert.ErrorIs(t, err, ErrUnknownOperation)

	_, err = s.Dispatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnknownOperation)

	// The session remains usable.
	mustDispatch(t, s, ListLogs{})
}

func TestResultJSON_EmptyListsDistinguished(t *testing.T) {
	s := New("alice", newTestServices(t, false), zaptest.NewLogger(t))

	tests := []struct {
		name  string
		cmd   Command
		field string
	}{
		{"logs", ListLogs{}, "logs"},
		{"categories", ListCategories{}, "categories"},
		{"goals", ListGoals{}, "goals"},
		{"progress", ViewProgress{}, "progress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(mustDispatch(t, s, tt.cmd))
			require.NoError(t, err)

			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &fields))
			assert.JSONEq(t, `[]`, string(fields[tt.field]), "an empty list is still a list")
		})
	}

	data, err := json.Marshal(mustDispatch(t, s, AddCategory{Name: "Cardio"}))
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "null", string(fields["categories"]))
}
