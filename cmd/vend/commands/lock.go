package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vend/internal/app"
)

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve all dependencies and write vend.lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := projectDir(cmd)
			if err != nil {
				return err
			}
			check, err := cmd.Flags().GetBool("check")
			if err != nil {
				return err
			}
			return c.app.Lock(cmd.Context(), app.LockOptions{Dir: dir, Check: check})
		},
	}
	cmd.Flags().Bool("check", false, "Fail if vend.lock is out of date instead of writing it")
	return cmd
}
