package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/fittrack/internal/ledger"
	"github.com/roach88/fittrack/internal/model"
)

var (
	// ErrUnknownOperation is returned for an unrecognised tag or command.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidArgument is returned when a command argument is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Op is an operation tag.
type Op string

// Operation tags.
const (
	OpLogExercise    Op = "log-exercise"
	OpListLogs       Op = "list-logs"
	OpCompleteLog    Op = "complete-log"
	OpListCategories Op = "list-categories"
	OpAddCategory    Op = "add-category"
	OpRenameCategory Op = "rename-category"
	OpDeleteCategory Op = "delete-category"
	OpAddGoal        Op = "add-goal"
	OpListGoals      Op = "list-goals"
	OpUpdateGoal     Op = "update-goal"
	OpDeleteGoal     Op = "delete-goal"
	OpViewProgress   Op = "view-progress"
)

// Ops lists every operation tag in menu order.
var Ops = []Op{
	OpLogExercise, OpListLogs, OpCompleteLog,
	OpListCategories, OpAddCategory, OpRenameCategory, OpDeleteCategory,
	OpAddGoal, OpListGoals, OpUpdateGoal, OpDeleteGoal,
	OpViewProgress,
}

// Command is a typed operation request.
type Command interface {
	Op() Op
}

// LogExercise records an exercise. Numeric fields are validated by the ledger.
type LogExercise struct {
	ledger.ExerciseInput
}

// ListLogs lists the session user's exercise logs.
type ListLogs struct{}

// CompleteLog marks one of the session user's logs completed.
type CompleteLog struct {
	LogID model.LogID
}

// ListCategories lists all categories.
type ListCategories struct{}

// AddCategory creates a category.
type AddCategory struct {
	Name string
}

// RenameCategory renames a category.
type RenameCategory struct {
	ID   model.CategoryID
	Name string
}

// DeleteCategory removes a category.
type DeleteCategory struct {
	ID model.CategoryID
}

// AddGoal creates a goal for the session user.
type AddGoal struct {
	Description string
	Progress    float64
}

// ListGoals lists the session user's goals.
type ListGoals struct{}

// UpdateGoal sets a goal's progress.
type UpdateGoal struct {
	ID       model.GoalID
	Progress float64
}

// DeleteGoal removes a goal.
type DeleteGoal struct {
	ID model.GoalID
}

// ViewProgress reports (name, progress) for the session user's goals.
type ViewProgress struct{}

func (LogExercise) Op() Op    { return OpLogExercise }
func (ListLogs) Op() Op       { return OpListLogs }
func (CompleteLog) Op() Op    { return OpCompleteLog }
func (ListCategories) Op() Op { return OpListCategories }
func (AddCategory) Op() Op    { return OpAddCategory }
func (RenameCategory) Op() Op { return OpRenameCategory }
func (DeleteCategory) Op() Op { return OpDeleteCategory }
func (AddGoal) Op() Op        { return OpAddGoal }
func (ListGoals) Op() Op      { return OpListGoals }
func (UpdateGoal) Op() Op     { return OpUpdateGoal }
func (DeleteGoal) Op() Op     { return OpDeleteGoal }
func (ViewProgress) Op() Op   { return OpViewProgress }

// ParseCommand builds the Command for tag from string arguments.
//
// Ids and goal progress are parsed here. Exercise numerics are passed
// through untouched so the ledger reports ledger.ErrInvalidNumericInput.
func ParseCommand(tag string, args map[string]string) (Command, error) {
	a := arguments(args)

	switch Op(strings.TrimSpace(tag)) {
	case OpLogExercise:
		return LogExercise{ExerciseInput: ledger.ExerciseInput{
			Name:     a["name"],
			Date:     a["date"],
			Duration: a["duration"],
			Sets:     a["sets"],
			Reps:     a["reps"],
			Weight:   a["weight"],
			Notes:    a["notes"],
		}}, nil

	case OpListLogs:
		return ListLogs{}, nil

	case OpCompleteLog:
		id, err := a.id("id")
		if err != nil {
			return nil, err
		}
		return CompleteLog{LogID: model.LogID(id)}, nil

	case OpListCategories:
		return ListCategories{}, nil

	case OpAddCategory:
		return AddCategory{Name: a["name"]}, nil

	case OpRenameCategory:
		id, err := a.id("id")
		if err != nil {
			return nil, err
		}
		return RenameCategory{ID: model.CategoryID(id), Name: a["name"]}, nil

	case OpDeleteCategory:
		id, err := a.id("id")
		if err != nil {
			return nil, err
		}
		return DeleteCategory{ID: model.CategoryID(id)}, nil

	case OpAddGoal:
		progress, err := a.float("progress")
		if err != nil {
			return nil, err
		}
		return AddGoal{Description: a["description"], Progress: progress}, nil

	case OpListGoals:
		return ListGoals{}, nil

	case OpUpdateGoal:
		id, err := a.id("id")
		if err != nil {
			return nil, err
		}
		progress, err := a.float("progress")
		if err != nil {
			return nil, err
		}
		return UpdateGoal{ID: model.GoalID(id), Progress: progress}, nil

	case OpDeleteGoal:
		id, err := a.id("id")
		if err != nil {
			return nil, err
		}
		return DeleteGoal{ID: model.GoalID(id)}, nil

	case OpViewProgress:
		return ViewProgress{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, tag)
}

type arguments map[string]string

func (a arguments) required(key string) (string, error) {
	v, ok := a[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidArgument, key)
	}
	return strings.TrimSpace(v), nil
}

func (a arguments) id(key string) (int64, error) {
	v, err := a.required(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidArgument, key, v)
	}
	return n, nil
}

func (a arguments) float(key string) (float64, error) {
	v, err := a.required(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number, got %q", ErrInvalidArgument, key, v)
	}
	return f, nil
}
