package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/annocache/internal/adapters/watcher"
	"go.trai.ch/annocache/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var (
		parallelism int
		window      time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Warm the cache, then refresh it whenever sources or the manifest change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, app.Overrides{Parallelism: parallelism}, func(s *app.Session) error {
				out := cmd.OutOrStdout()
				report, err := s.Warm(cmd.Context())
				printReport(out, "warmed", report)
				if err != nil {
					c.logger.Error(err)
				}

				if metricsAddr != "" {
					srv, err := c.app.ServeMetrics(metricsAddr)
					if err != nil {
						return err
					}
					defer func() {
						if err := srv.Shutdown(context.WithoutCancel(cmd.Context())); err != nil {
							c.logger.Error(err)
						}
					}()
				}

				w, err := c.app.NewWatcher()
				if err != nil {
					return err
				}
				return s.Watch(cmd.Context(), w, window, func(report app.WarmReport, err error) {
					printReport(out, "refreshed", report)
					if err != nil {
						c.logger.Error(err)
					}
				})
			})
		},
	}
	cmd.Flags().IntVarP(&parallelism, "parallelism", "j", 0, "Maximum concurrent resolutions (default: number of CPUs)")
	cmd.Flags().DurationVar(&window, "debounce", watcher.DefaultDebounceWindow, "Quiet period before a batch of changes is processed")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve resolution counters at this address under /metrics while watching")
	return cmd
}
