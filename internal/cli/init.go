package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	WriteConfig string
}

// InitResult is the init command's output.
type InitResult struct {
	Database      string `json:"database"`
	Reset         bool   `json:"reset"`
	ConfigWritten string `json:"config_written,omitempty"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and its tables",
		Long: `Open the configured SQLite database and create the users, exercise_logs,
workout_categories and workout_goals tables.

With --write-config, the effective configuration is also saved as YAML so it
can be edited and passed back with --config.

Example:
  fittrack init --db ./fitness_tracker.db
  fittrack init --write-config fittrack.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.WriteConfig, "write-config", "", "save the effective configuration to this file")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	env, err := openEnvironment(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	result := InitResult{
		Database: env.cfg.Database.Path,
		Reset:    env.cfg.Database.ResetOnStartup,
	}

	if opts.WriteConfig != "" {
		if err := env.cfg.Save(opts.WriteConfig); err != nil {
			return WrapExitError(ExitCommandError, "failed to write config", err)
		}
		result.ConfigWritten = opts.WriteConfig
		formatter.VerboseLog("Wrote config to %s", opts.WriteConfig)
	}

	return formatter.Success(result)
}

// WriteText prints the database path and any written config file.
func (r InitResult) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Initialized database at %s\n", r.Database)
	if r.ConfigWritten != "" {
		fmt.Fprintf(w, "Wrote config to %s\n", r.ConfigWritten)
	}
}
