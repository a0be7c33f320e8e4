package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
)

const (
	// Metadata catalog probes. Default catalog/schema on Spanner are the
	// empty string.
	tableCatalogSQL = `SELECT t.table_name FROM information_schema.tables AS t
		WHERE t.table_catalog = '' AND t.table_schema = ''
		AND t.table_name IN UNNEST(@tables)`
	graphCatalogSQL = `SELECT 1 FROM information_schema.property_graphs
		WHERE property_graph_name = @name`
)

// EnsureSchema verifies that the node table, edge table, and property graph
// exist, creating whatever is missing. It is idempotent and safe to call on
// every write path: a pre-existing schema short-circuits to a no-op.
//
// Unlike cleanup, schema verification reports failure to the caller so that
// writers can abort instead of committing into a void. RefreshSchema provides
// the log-and-continue surface.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.DDLTimeout)
	defer cancel()

	existing, err := s.existingTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to probe table catalog: %w", err)
	}

	var ddl []string
	if !existing[s.cfg.NodeTable] {
		ddl = append(ddl, nodeTableDDL(s.cfg.NodeTable))
	}
	if !existing[s.cfg.EdgeTable] {
		ddl = append(ddl, edgeTableDDL(s.cfg.NodeTable, s.cfg.EdgeTable))
	}

	if len(ddl) > 0 {
		s.log.Info("Creating missing graph tables",
			zap.Int("statements", len(ddl)),
			zap.String("node_table", s.cfg.NodeTable),
			zap.String("edge_table", s.cfg.EdgeTable),
		)
		if err := s.admin.UpdateDDL(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create graph tables: %w", err)
		}
	}

	graphExists, err := s.graphExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to probe property graph catalog: %w", err)
	}
	if !graphExists {
		s.log.Info("Creating property graph", zap.String("graph", s.cfg.GraphName))
		stmt := propertyGraphDDL(s.cfg.GraphName, s.cfg.NodeTable, s.cfg.EdgeTable)
		if err := s.admin.UpdateDDL(ctx, []string{stmt}); err != nil {
			return fmt.Errorf("failed to create property graph %s: %w", s.cfg.GraphName, err)
		}
	}

	return nil
}

// existingTables returns the subset of the configured table names already
// present in the backend's metadata catalog.
func (s *Store) existingTables(ctx context.Context) (map[string]bool, error) {
	stmt := spanner.Statement{
		SQL: tableCatalogSQL,
		Params: map[string]interface{}{
			"tables": []string{s.cfg.NodeTable, s.cfg.EdgeTable},
		},
	}

	existing := make(map[string]bool)
	err := s.db.ReadRows(ctx, stmt, func(r *spanner.Row) error {
		var name string
		if err := r.Columns(&name); err != nil {
			return err
		}
		existing[name] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Store) graphExists(ctx context.Context) (bool, error) {
	stmt := spanner.Statement{
		SQL:    graphCatalogSQL,
		Params: map[string]interface{}{"name": s.cfg.GraphName},
	}

	found := false
	err := s.db.ReadRows(ctx, stmt, func(r *spanner.Row) error {
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
