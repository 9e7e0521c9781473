package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.trai.ch/annocache/internal/app"
	"go.trai.ch/annocache/internal/core/domain"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	var (
		tf   targetFlags
		kind string
	)

	cmd := &cobra.Command{
		Use:   "resolve <declaration>",
		Short: "Print the annotations of a declaration or member as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := tf.target(args[0])
			if err != nil {
				return err
			}

			return c.withSession(cmd, app.Overrides{}, func(s *app.Session) error {
				var result any
				if kind != "" {
					a, ok, err := s.Annotation(cmd.Context(), target, kind)
					if err != nil {
						return err
					}
					if ok {
						result = a
					}
				} else {
					all, err := s.Annotations(cmd.Context(), target)
					if err != nil {
						return err
					}
					if all == nil {
						all = domain.Collection{}
					}
					result = all
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			})
		},
	}
	tf.register(cmd)
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only print the first annotation of this kind")
	return cmd
}
