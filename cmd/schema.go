package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/graphloom/internal/observability"
)

// newSchemaCmd creates the `schema` command group.
func newSchemaCmd() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Manages the graph storage schema",
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Verifies the tables and property graph, creating whatever is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			st, err := openStore(ctx, appConfig, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			// Surface the outcome here instead of the log-only surface.
			if err := st.EnsureSchema(ctx); err != nil {
				return err
			}
			logger.Info("Schema verified")
			return nil
		},
	}

	schemaCmd.AddCommand(refreshCmd)
	return schemaCmd
}
