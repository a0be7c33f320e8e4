package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/graphloom/internal/observability"
)

// newCleanupCmd creates the `cleanup` command: best-effort teardown of the
// property graph and both tables.
func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Drops the property graph and both storage tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			st, err := openStore(ctx, appConfig, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			st.Cleanup(ctx)
			logger.Info("Cleanup finished")
			return nil
		},
	}
}
