package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/fittrack/internal/app"
	"github.com/roach88/fittrack/internal/script"
	"github.com/roach88/fittrack/internal/session"
)

// NewScriptCommand creates the script command.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script <file.yaml>",
		Short: "Run a YAML script of operations",
		Long: `Run a YAML script of fittrack operations as one user.

The script names a user, optionally creates the account, logs in and then
dispatches each step. A step's outcome is compared with its expect value
("success" by default, or "error"). Unknown operations are reported and
skipped.

Exit code is 0 when every step matched, 1 when the login was rejected or a
step failed, and 2 when the script or database could not be loaded.

Example:
  fittrack script ./workout.yaml
  fittrack script --format json --db :memory: ./workout.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScript(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := script.Load(path)
	if err != nil {
		_ = formatter.Error(ErrCodeScriptLoad, err.Error(), map[string]string{"path": path})
		return WrapExitError(ExitCommandError, "failed to load script", err)
	}
	formatter.VerboseLog("Loaded script %q with %d step(s)", s.Name, len(s.Steps))

	env, err := openEnvironment(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer env.Close()

	report, err := script.Run(cmd.Context(), env.app, s, env.log)
	if err != nil {
		_ = formatter.Failure(err, map[string]string{
			"script":   s.Name,
			"username": s.User.Username,
		})
		if errorCode(err) == app.CodeStore {
			return WrapExitError(ExitCommandError, "script aborted", err)
		}
		return WrapExitError(ExitFailure, "script aborted", err)
	}

	if err := formatter.Success(scriptReport{report}); err != nil {
		return err
	}

	if !report.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d step(s) failed", report.Failed))
	}
	return nil
}

// scriptReport renders a script.Report. It encodes to JSON exactly as the
// embedded report does.
type scriptReport struct {
	*script.Report
}

// WriteText prints one line per step and a summary line.
func (r scriptReport) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Script %s (user %s)\n", r.Name, r.Username)
	for _, sr := range r.Steps {
		mark := "✓"
		if sr.Failed {
			mark = "✗"
		} else if sr.Status == script.StatusSkipped {
			mark = "-"
		}

		switch sr.Status {
		case script.StatusOK:
			fmt.Fprintf(w, "%s [%d] %s: ok%s\n", mark, sr.Index+1, sr.Op, summarize(sr.Result))
		default:
			fmt.Fprintf(w, "%s [%d] %s: %s [%s] %s\n", mark, sr.Index+1, sr.Op, sr.Status, sr.Code, sr.Error)
		}
	}
	fmt.Fprintf(w, "%d step(s), %d failed, %d skipped\n", len(r.Steps), r.Failed, r.Skipped)
}

// summarize describes a successful result in a few words.
func summarize(res *session.Result) string {
	if res == nil {
		return ""
	}
	switch res.Op {
	case session.OpListLogs:
		return fmt.Sprintf(" (logs: %d)", len(res.Logs))
	case session.OpListCategories:
		return fmt.Sprintf(" (categories: %d)", len(res.Categories))
	case session.OpListGoals:
		return fmt.Sprintf(" (goals: %d)", len(res.Goals))
	case session.OpViewProgress:
		return fmt.Sprintf(" (goals: %d)", len(res.Progress))
	}
	if res.ID != 0 {
		return fmt.Sprintf(" (id %d)", res.ID)
	}
	return ""
}
