package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petrijr/choreo/pkg/easing"
	"github.com/petrijr/choreo/pkg/scene"
)

func newListCmd(a *app) *cobra.Command {
	var showEasings bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the embedded demo scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showEasings {
				for _, name := range easing.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTEPS\tLOOP\tTITLE")
			for _, name := range scene.Builtins() {
				sc, err := scene.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", sc.Name, len(sc.Steps), sc.Loop, sc.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&showEasings, "easings", false, "list easing names instead")
	return cmd
}
