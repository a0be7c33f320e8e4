package cmd

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/graphloom/api/schemas"
	"github.com/xkilldash9x/graphloom/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// newQueryCmd creates the `query` command: run a read statement and print
// one JSON object per row.
func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <statement>",
		Short: "Executes a read query and prints rows as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			st, err := openStore(ctx, appConfig, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			rows, err := st.Query(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, row := range rows {
				line, err := renderRow(row)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// renderRow serializes a result row as a JSON object preserving the result's
// column order, which plain map marshaling would lose.
func renderRow(row schemas.ResultRow) (string, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, col := range row.Columns {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return "", fmt.Errorf("failed to render column name %q: %w", col, err)
		}
		value, err := json.Marshal(row.Values[col])
		if err != nil {
			return "", fmt.Errorf("failed to render column %q: %w", col, err)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.String(), nil
}
