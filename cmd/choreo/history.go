package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/petrijr/choreo"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		journal string
		script  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "List journaled runs, or the events of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if journal == "" {
				return errors.New("--journal is required")
			}
			j, closeJournal, err := openJournal(journal)
			if err != nil {
				return err
			}
			defer closeJournal()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if len(args) == 1 {
				evs, err := j.ListEvents(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				fmt.Fprintln(tw, "AT\tEVENT\tSTEP\tKIND\tDURATION\tDETAIL")
				for _, ev := range evs {
					fmt.Fprintf(tw, "+%.3fs\t%s\t%s\t%s\t%s\t%s\n",
						ev.At.Sub(evs[0].At).Seconds(), ev.Type, ev.Step, ev.Kind, formatDuration(ev.Duration), ev.Detail)
				}
				return tw.Flush()
			}

			runs, err := j.ListRuns(cmd.Context(), choreo.RunFilter{Script: script, Limit: limit})
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "RUN\tSCRIPT\tOUTCOME\tSTARTED\tDURATION\tDETAIL")
			for _, r := range runs {
				outcome, dur := "running", ""
				if r.Outcome != "" {
					outcome = string(r.Outcome)
					dur = formatDuration(r.EndedAt.Sub(r.StartedAt))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.RunID, r.Script, outcome, r.StartedAt.Format(time.RFC3339), dur, r.Detail)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&journal, "journal", "", "SQLite file or redis:// URL to read")
	cmd.Flags().StringVar(&script, "script", "", "only runs of this scene")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs")
	return cmd
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.Round(time.Millisecond).String()
}
