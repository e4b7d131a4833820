package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vend/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install every resolved dependency into a directory",
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
			dest, err := cmd.Flags().GetString("dest")
			if err != nil {
				return err
			}
			return c.app.Install(cmd.Context(), app.InstallOptions{Dir: dir, Dest: dest, Phase: phase})
		},
	}
	cmd.Flags().String("dest", "", "Install directory, relative to the manifest directory")
	cmd.Flags().Bool("test", false, "Use the test dependencies")
	_ = cmd.MarkFlagRequired("dest")
	return cmd
}
