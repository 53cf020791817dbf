package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/fittrack/internal/app"
	"github.com/roach88/fittrack/internal/testutil"
)

// runShell feeds lines to a fresh shell and returns everything it printed.
func runShell(t *testing.T, opts app.Options, lines ...string) string {
	t.Helper()
	st := testutil.NewStore(t)
	log := zaptest.NewLogger(t)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	sh := New(app.New(st, opts, log), in, &out, log)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestRun_FullSession(t *testing.T) {
	out := runShell(t, app.Options{},
		"2", "ann",
		"2", "alice", testutil.DefaultPassword,
		"1", "alice", testutil.DefaultPassword,
		"4", "1", "Cardio",
		"1", "squat", "2025-01-01", "30", "3", "10", "100", "heavy",
		"3", "1",
		"2",
		"5", "1", "Run 5k", "25",
		"6",
		"7",
		"9",
		"3",
	)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "full_session", []byte(out))
}

func TestRun_EndOfInputQuits(t *testing.T) {
	out := runShell(t, app.Options{})
	assert.True(t, strings.HasSuffix(out, "Enter your choice: \nExiting...\n"), out)
}

func TestRun_EndOfInputInsideMenu(t *testing.T) {
	out := runShell(t, app.Options{},
		"2", "alice", testutil.DefaultPassword,
		"1", "alice", testutil.DefaultPassword,
		"1", "squat",
	)
	assert.Contains(t, out, "Enter the date (YYYY-MM-DD): \nExiting...\n")
}

func TestRun_InvalidWelcomeChoice(t *testing.T) {
	out := runShell(t, app.Options{}, "x", "3")
	assert.Contains(t, out, "Enter your choice: Invalid choice. Please try again.\n")
}

func TestRun_AccountErrors(t *testing.T) {
	out := runShell(t, app.Options{},
		"2", "alice", "short",
		"2", "alice", testutil.DefaultPassword,
		"2", "alice", testutil.DefaultPassword,
		"1", "alice", "Wrong!Pass",
		"3",
	)
	assert.Contains(t, out, "Password must be at least 7 characters long, contain at least 1 uppercase letter, and 1 special character.\n")
	assert.Contains(t, out, "Error creating account: username already exists\n")
	assert.Contains(t, out, "Invalid username or password.\n")
	assert.NotContains(t, out, "Login successful.")
}

func TestRun_OperationErrors(t *testing.T) {
	out := runShell(t, app.Options{},
		"2", "alice", testutil.DefaultPassword,
		"1", "alice", testutil.DefaultPassword,
		"1", "squat", "2025-01-01", "thirty", "3", "10", "100", "",
		"3", "42",
		"3", "abc",
		"4", "1", "Cardio",
		"4", "1", "Cardio",
		"4", "2", "99", "Yoga",
		"5", "3", "7",
		"2",
		"9",
		"3",
	)
	assert.Contains(t, out, `Error logging exercise: invalid numeric input: duration must be an integer, got "thirty"`)
	assert.Contains(t, out, "No exercise log found with the provided Log ID.\n")
	assert.Contains(t, out, `Error marking exercise as completed: invalid argument: id must be an integer, got "abc"`)
	assert.Contains(t, out, "Error adding workout category: category already exists\n")
	assert.Contains(t, out, "Error updating workout category: category not found\n")
	assert.Contains(t, out, "Error deleting workout goal: goal not found\n")
	assert.Contains(t, out, "No exercise logs found.\n")
}

func TestRun_CategoryListing(t *testing.T) {
	out := runShell(t, app.Options{},
		"2", "alice", testutil.DefaultPassword,
		"1", "alice", testutil.DefaultPassword,
		"4", "1", "Cardio",
		"4", "1", "Strength",
		"4", "2", "2", "Weights",
		"4", "3", "1",
		"4", "x",
		"9",
		"3",
	)
	assert.Contains(t, out, "Category ID: 1, Name: Cardio\nCategory ID: 2, Name: Strength\n")
	assert.Contains(t, out, "Category name updated successfully.\n")
	assert.Contains(t, out, "Category deleted successfully.\n")
	assert.Contains(t, out, "Workout Categories:\nCategory ID: 2, Name: Weights\n\n1. Add New Category")
}

func TestRun_OwnerScopedGoals(t *testing.T) {
	out := runShell(t, app.Options{OwnerScopedGoals: true},
		"2", "alice", testutil.DefaultPassword,
		"2", "bobby", testutil.DefaultPassword,
		"1", "alice", testutil.DefaultPassword,
		"5", "1", "Run 5k", "10",
		"9",
		"1", "bobby", testutil.DefaultPassword,
		"5", "2", "1", "90",
		"9",
		"3",
	)
	assert.Contains(t, out, "Error updating goal progress: goal not found\n")
	assert.NotContains(t, out, "Goal progress updated successfully.")
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		100:   "100.0",
		102.5: "102.5",
		0:     "0.0",
		-3:    "-3.0",
		33.33: "33.33",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatFloat(in), "formatFloat(%v)", in)
	}
}
