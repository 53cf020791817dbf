package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/fittrack/internal/shell"
)

// NewShellCommand creates the interactive shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu",
		Long: `Start the interactive fitness tracker menu.

Log in or create an account, then log exercises, mark them completed,
manage workout categories and goals, and view goal progress. Input is read
one answer per line from stdin; end of input quits.

Example:
  fittrack shell
  fittrack shell --db /tmp/fitness.db --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}

	return cmd
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	env, err := openEnvironment(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer env.Close()

	sh := shell.New(env.app, cmd.InOrStdin(), cmd.OutOrStdout(), env.log)
	if err := sh.Run(cmd.Context()); err != nil {
		return WrapExitError(ExitFailure, "shell error", err)
	}
	return nil
}
