package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vend/internal/app"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the resolved dependency tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := projectDir(cmd)
			if err != nil {
				return err
			}
			phase, err := phaseFlag(cmd)
			if err != nil {
				return err
			}
			return c.app.Dependencies(cmd.Context(), app.DepsOptions{Dir: dir, Phase: phase}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("test", false, "Use the test dependencies")
	return cmd
}
