package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/petrijr/choreo/pkg/scene"
)

// errInvalid is returned once every file has been reported.
var errInvalid = errors.New("one or more scenes are invalid")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check scene files for errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := make([]error, len(args))

			var g errgroup.Group
			g.SetLimit(8)
			for i, file := range args {
				g.Go(func() error {
					sc, err := scene.Resolve(file)
					if err == nil {
						_, err = sc.Script()
					}
					errs[i] = err
					return nil
				})
			}
			_ = g.Wait()

			out := cmd.OutOrStdout()
			failed := false
			for i, file := range args {
				if errs[i] != nil {
					failed = true
					fmt.Fprintf(out, "FAIL %s\n%v\n", file, errs[i])
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", file)
			}
			if failed {
				return errInvalid
			}
			return nil
		},
	}
}
