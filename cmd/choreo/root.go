package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/petrijr/choreo/internal/logging"
)

// app carries state shared by subcommands.
type app struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "choreo",
		Short: "Choreo plays timed UI walkthrough scenes",
		Long: `Choreo drives view model fields through scripted waits, tweens, typewriter
reveals and scrolls. Scenes are YAML files or one of the embedded demos.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.New(level, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		newListCmd(a),
		newValidateCmd(a),
		newTraceCmd(a),
		newPlayCmd(a),
		newHistoryCmd(a),
	)
	return root
}
