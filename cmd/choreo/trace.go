package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/petrijr/choreo"
	"github.com/petrijr/choreo/pkg/clock"
	"github.com/petrijr/choreo/pkg/scene"
)

func newTraceCmd(a *app) *cobra.Command {
	var (
		until   time.Duration
		fps     int
		journal string
	)

	cmd := &cobra.Command{
		Use:   "trace SCENE|FILE",
		Short: "Play a scene on a simulated clock and print every field change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Resolve(args[0])
			if err != nil {
				return err
			}

			// Virtual time starts at the wall clock so journaled runs sort
			// by when they were traced.
			clk := clock.NewSimulated(time.Now().UTC(), clock.FrameInterval(fps))
			opts := []choreo.Option{choreo.WithLogger(a.logger)}
			if journal != "" {
				j, closeJournal, err := openJournal(journal)
				if err != nil {
					return err
				}
				defer closeJournal()
				opts = append(opts, choreo.WithObserver(choreo.NewJournalObserver(j, clk, a.logger)))
			}

			topts := choreo.TraceOptions{Until: until, Clock: clk}
			res, err := choreo.Trace(cmd.Context(), sc, cmd.OutOrStdout(), topts, opts...)
			if err != nil {
				return err
			}
			return res.Err
		},
	}
	cmd.Flags().DurationVar(&until, "until", 0, "cancel the run after this much virtual time")
	cmd.Flags().IntVar(&fps, "fps", clock.DefaultFPS, "paint cadence in frames per second")
	cmd.Flags().StringVar(&journal, "journal", "", "record the run into a SQLite file or redis:// URL")
	return cmd
}
