package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/graphloom/api/schemas"
	"github.com/xkilldash9x/graphloom/internal/observability"
	"github.com/xkilldash9x/graphloom/internal/transformer"
)

// newIngestCmd creates the `ingest` command: extract graph documents from
// text files and persist them.
func newIngestCmd() *cobra.Command {
	var (
		includeSource   bool
		baseEntityLabel bool
	)

	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Extracts knowledge graphs from text files and persists them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			ingestionID := uuid.New().String()
			docs := make([]schemas.Document, 0, len(args))
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				docs = append(docs, schemas.Document{
					PageContent: string(content),
					Metadata: map[string]any{
						"filename":     filepath.Base(path),
						"ingestion_id": ingestionID,
					},
				})
			}

			tr, err := transformer.New(ctx, transformer.Config{
				Model:             appConfig.Transformer.Model,
				APIKey:            appConfig.Transformer.APIKey,
				Temperature:       appConfig.Transformer.Temperature,
				Concurrency:       appConfig.Transformer.Concurrency,
				RequestsPerSecond: appConfig.Transformer.RequestsPerSecond,
				RequestTimeout:    appConfig.Transformer.RequestTimeout,
			}, logger)
			if err != nil {
				return fmt.Errorf("failed to build transformer: %w", err)
			}

			logger.Info("Extracting graph documents",
				zap.String("ingestion_id", ingestionID),
				zap.Int("documents", len(docs)),
				zap.String("model", appConfig.Transformer.Model),
			)
			graphDocs, err := tr.Transform(ctx, docs)
			if err != nil {
				return err
			}

			st, err := openStore(ctx, appConfig, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					logger.Warn("Failed to close store", zap.Error(err))
				}
			}()

			if err := st.AddGraphDocuments(ctx, graphDocs, includeSource, baseEntityLabel); err != nil {
				return err
			}

			var nodes, edges int
			for _, d := range graphDocs {
				nodes += len(d.Nodes)
				edges += len(d.Relationships)
			}
			logger.Info("Ingestion complete",
				zap.String("ingestion_id", ingestionID),
				zap.Int("nodes", nodes),
				zap.Int("edges", edges),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeSource, "include-source", false, "attach the source text and metadata to every node")
	cmd.Flags().BoolVar(&baseEntityLabel, "base-entity-label", false, "tag every node with baseEntityLabel")
	return cmd
}
