package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/annocache/internal/app"
)

func (c *CLI) newKeyCmd() *cobra.Command {
	var tf targetFlags

	cmd := &cobra.Command{
		Use:   "key <declaration>",
		Short: "Print the cache key and freshness marker key of a declaration or member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := tf.target(args[0])
			if err != nil {
				return err
			}
			key, marker, err := app.Keys(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "key:    %s\n", key)
			_, _ = fmt.Fprintf(out, "marker: %s\n", marker)
			return nil
		},
	}
	tf.register(cmd)
	return cmd
}
