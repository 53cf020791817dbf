package shell

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/fittrack/internal/category"
	"github.com/roach88/fittrack/internal/goal"
	"github.com/roach88/fittrack/internal/identity"
	"github.com/roach88/fittrack/internal/ledger"
	"github.com/roach88/fittrack/internal/session"
)

func (s *Shell) logExercise(ctx context.Context, sess *session.Session) error {
	args, err := s.ask(
		[2]string{"name", "Enter the name of the exercise: "},
		[2]string{"date", "Enter the date (YYYY-MM-DD): "},
		[2]string{"duration", "Enter the duration (minutes): "},
		[2]string{"sets", "Enter the number of sets: "},
		[2]string{"reps", "Enter the number of reps per set: "},
		[2]string{"weight", "Enter the weight (kg): "},
		[2]string{"notes", "Enter any notes (optional): "},
	)
	if err != nil {
		return err
	}
	if _, ok := s.run(ctx, sess, session.OpLogExercise, args, "Error logging exercise"); ok {
		s.println("Exercise logged successfully.")
	}
	return nil
}

func (s *Shell) viewLogs(ctx context.Context, sess *session.Session) {
	res, ok := s.run(ctx, sess, session.OpListLogs, nil, "Error viewing exercise log")
	if !ok {
		return
	}
	if len(res.Logs) == 0 {
		s.println("No exercise logs found.")
		return
	}
	s.println("Exercise Logs:")
	for _, l := range res.Logs {
		s.printf("Log ID: %d\n", l.ID)
		s.printf("Exercise Name: %s\n", l.ExerciseName)
		s.printf("Date: %s\n", l.Date)
		s.printf("Duration: %d minutes\n", l.Duration)
		s.printf("Sets: %d\n", l.Sets)
		s.printf("Reps per Set: %d\n", l.Reps)
		s.printf("Weight: %s kg\n", formatFloat(l.Weight))
		s.printf("Notes: %s\n", l.Notes)
		s.printf("Completed: %s\n", yesNo(l.Completed))
		s.println()
	}
}

func (s *Shell) completeLog(ctx context.Context, sess *session.Session) error {
	id, err := s.prompt("Enter the Log ID of the exercise to mark as completed: ")
	if err != nil {
		return err
	}
	cmd, err := session.ParseCommand(string(session.OpCompleteLog), map[string]string{"id": id})
	if err == nil {
		_, err = sess.Dispatch(ctx, cmd)
	}
	switch {
	case err == nil:
		s.println("Exercise marked as completed successfully.")
	case errors.Is(err, ledger.ErrNotFound):
		s.println("No exercise log found with the provided Log ID.")
	default:
		s.printf("Error marking exercise as completed: %s\n", describe(err))
	}
	return nil
}

// manageCategories lists categories and then always offers the sub-menu,
// so the first category can be added from an empty list.
func (s *Shell) manageCategories(ctx context.Context, sess *session.Session) error {
	res, ok := s.run(ctx, sess, session.OpListCategories, nil, "Error managing workout categories")
	if !ok {
		return nil
	}
	if len(res.Categories) == 0 {
		s.println("No workout categories found.")
	} else {
		s.println("Workout Categories:")
		for _, c := range res.Categories {
			s.printf("Category ID: %d, Name: %s\n", c.ID, c.Name)
		}
	}

	s.println()
	s.println("1. Add New Category")
	s.println("2. Update Category")
	s.println("3. Delete Category")
	choice, err := s.prompt("Enter your choice: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		args, err := s.ask([2]string{"name", "Enter the name of the new category: "})
		if err != nil {
			return err
		}
		if _, ok := s.run(ctx, sess, session.OpAddCategory, args, "Error adding workout category"); ok {
			s.println("New category added successfully.")
		}
	case "2":
		args, err := s.ask(
			[2]string{"id", "Enter the ID of the category to update: "},
			[2]string{"name", "Enter the new name for the category: "},
		)
		if err != nil {
			return err
		}
		if _, ok := s.run(ctx, sess, session.OpRenameCategory, args, "Error updating workout category"); ok {
			s.println("Category name updated successfully.")
		}
	case "3":
		args, err := s.ask([2]string{"id", "Enter the ID of the category to delete: "})
		if err != nil {
			return err
		}
		if _, ok := s.run(ctx, sess, session.OpDeleteCategory, args, "Error deleting workout category"); ok {
			s.println("Category deleted successfully.")
		}
	default:
		s.println("Invalid choice. Please try again.")
	}
	return nil
}

func (s *Shell) manageGoals(ctx context.Context, sess *session.Session) error {
	res, ok := s.run(ctx, sess, session.OpListGoals, nil, "Error managing workout goals")
	if !ok {
		return nil
	}
	if len(res.Goals) == 0 {
		s.println("No workout goals found.")
	} else {
		s.println("Workout Goals:")
		for _, g := range res.Goals {
			s.printf("Goal ID: %d\n", g.ID)
			s.printf("Goal: %s\n", g.Name)
			s.printf("Progress: %s%%\n", formatFloat(g.Progress))
			s.println()
		}
	}

	s.println()
	s.println("1. Add New Goal")
	s.println("2. Update Goal Progress")
	s.println("3. Delete Goal")
	choice, err := s.prompt("Enter your choice: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		args, err := s.ask(
			[2]string{"description", "Enter the description of the new goal: "},
			[2]string{"progress", "Enter the current progress (in percentage): "},
		)
		if err != nil {
			return err
		}
		if _, ok := s.run(ctx, sess, session.OpAddGoal, args, "Error adding workout goal"); ok {
			s.println("New goal added successfully.")
		}
	case "2":
		args, err := s.ask(
			[2]string{"id", "Enter the ID of the goal to update: "},
			[2]string{"progress", "Enter the new progress (in percentage): "},
		)
		if err != nil {
			return err
		}
		if _, ok := s.run(ctx, sess, session.OpUpdateGoal, args, "Error updating goal progress"); ok {
			s.println("Goal progress updated successfully.")
		}
	case "3":
		args, err := s.ask([2]string{"id", "Enter the ID of the goal to delete: "})
		if err != nil {
			return err
		}
		if _, ok := s.run(ctx, sess, session.OpDeleteGoal, args, "Error deleting workout goal"); ok {
			s.println("Goal deleted successfully.")
		}
	default:
		s.println("Invalid choice. Please try again.")
	}
	return nil
}

func (s *Shell) viewProgress(ctx context.Context, sess *session.Session) {
	res, ok := s.run(ctx, sess, session.OpViewProgress, nil, "Error viewing progress towards fitness goals")
	if !ok {
		return
	}
	if len(res.Progress) == 0 {
		s.println("No workout goals found.")
		return
	}
	s.println("Fitness Goals Progress:")
	for _, p := range res.Progress {
		s.printf("Goal: %s\n", p.Name)
		s.printf("Progress: %s%%\n", formatFloat(p.Progress))
		s.println()
	}
}

// describe reduces known errors to their bare message so users do not see
// the wrapping context. Anything else is shown in full.
func describe(err error) string {
	for _, known := range []error{
		identity.ErrInvalidUsername,
		identity.ErrInvalidPassword,
		identity.ErrDuplicateUsername,
		category.ErrDuplicateCategory,
		category.ErrNotFound,
		goal.ErrNotFound,
		ledger.ErrNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}

// formatFloat renders whole numbers with a trailing ".0" (100 -> "100.0")
// and everything else in the shortest exact form.
func formatFloat(f float64) string {
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.Contains(out, ".") {
		return out
	}
	return out + ".0"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
