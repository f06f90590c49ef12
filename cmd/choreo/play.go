package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/petrijr/choreo"
	"github.com/petrijr/choreo/internal/tui"
	"github.com/petrijr/choreo/pkg/clock"
	"github.com/petrijr/choreo/pkg/metrics"
	"github.com/petrijr/choreo/pkg/scene"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		fps         int
		metricsAddr string
		journal     string
	)

	cmd := &cobra.Command{
		Use:   "play SCENE|FILE",
		Short: "Play a scene in the terminal in real time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Resolve(args[0])
			if err != nil {
				return err
			}

			clk := clock.Real(fps)
			opts := []choreo.Option{choreo.WithClock(clk), choreo.WithLogger(a.logger)}

			reg := prometheus.NewRegistry()
			if metricsAddr != "" {
				obs, err := metrics.NewPrometheusObserver(reg, "choreo")
				if err != nil {
					return err
				}
				opts = append(opts, choreo.WithObserver(obs))
			}
			if journal != "" {
				j, closeJournal, err := openJournal(journal)
				if err != nil {
					return err
				}
				defer closeJournal()
				opts = append(opts, choreo.WithObserver(choreo.NewJournalObserver(j, clk, a.logger)))
			}

			p, err := choreo.NewPlayer(sc, opts...)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			g, gctx := errgroup.WithContext(ctx)

			prog := tea.NewProgram(tui.New(gctx, p),
				tea.WithAltScreen(),
				tea.WithContext(gctx),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			g.Go(func() error {
				defer cancel()
				defer p.Unmount()
				_, err := prog.Run()
				if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
					return nil
				}
				return err
			})

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
				srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

				g.Go(func() error {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				g.Go(func() error {
					<-gctx.Done()
					shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
					defer stop()
					return srv.Shutdown(shutdownCtx)
				})
			}

			return g.Wait()
		},
	}
	cmd.Flags().IntVar(&fps, "fps", clock.DefaultFPS, "paint cadence in frames per second")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().StringVar(&journal, "journal", "", "record runs into a SQLite file or redis:// URL")
	return cmd
}
