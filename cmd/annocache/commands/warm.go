package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/annocache/internal/app"
	"go.trai.ch/annocache/internal/core/domain"
)

func (c *CLI) newWarmCmd() *cobra.Command {
	var parallelism int

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Resolve every declaration and member of the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, app.Overrides{Parallelism: parallelism}, func(s *app.Session) error {
				report, err := s.Warm(cmd.Context())
				printReport(cmd.OutOrStdout(), "warmed", report)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&parallelism, "parallelism", "j", 0, "Maximum concurrent resolutions (default: number of CPUs)")
	return cmd
}

func printReport(w io.Writer, verb string, r app.WarmReport) {
	parts := make([]string, 0, len(domain.Outcomes()))
	for _, o := range domain.Outcomes() {
		parts = append(parts, fmt.Sprintf("%s=%d", o, r.Outcomes[o]))
	}
	_, _ = fmt.Fprintf(w, "%s %d targets, %d failed (%s)\n", verb, r.Targets, r.Failed, strings.Join(parts, " "))
}
