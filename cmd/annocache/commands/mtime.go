package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/annocache/internal/app"
	"go.trai.ch/annocache/internal/core/domain"
)

func (c *CLI) newMtimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mtime <declaration>",
		Short: "Print the latest modification time over a declaration and everything it derives from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decl, err := domain.ParseDeclaration(args[0])
			if err != nil {
				return err
			}
			return c.withSession(cmd, app.Overrides{}, func(s *app.Session) error {
				latest, err := s.LatestModification(cmd.Context(), decl)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if latest == 0 {
					_, _ = fmt.Fprintln(out, "0 (no source artifacts)")
					return nil
				}
				_, _ = fmt.Fprintf(out, "%d (%s)\n", latest, time.Unix(latest, 0).UTC().Format(time.RFC3339))
				return nil
			})
		},
	}
}
