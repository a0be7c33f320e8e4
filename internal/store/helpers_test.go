package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
)

// -- Fakes for the narrow driver interfaces --

// fakeDatabase serves canned catalog and query rows and records Apply calls.
type fakeDatabase struct {
	// tables present in the fake metadata catalog.
	tables []string
	// graphPresent controls the property-graph catalog probe.
	graphPresent bool
	// queryRows are served to any non-catalog statement.
	queryRows []*spanner.Row

	probeErr error
	queryErr error
	applyErr error

	applied [][]*spanner.Mutation
	closed  bool
}

func (f *fakeDatabase) Apply(ctx context.Context, ms []*spanner.Mutation) (time.Time, error) {
	if f.applyErr != nil {
		return time.Time{}, f.applyErr
	}
	f.applied = append(f.applied, ms)
	return time.Now(), nil
}

func (f *fakeDatabase) ReadRows(ctx context.Context, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	switch {
	case strings.Contains(stmt.SQL, "information_schema.tables"):
		if f.probeErr != nil {
			return f.probeErr
		}
		for _, name := range f.tables {
			row, err := spanner.NewRow([]string{"table_name"}, []interface{}{name})
			if err != nil {
				return err
			}
			if err := fn(row); err != nil {
				return err
			}
		}
		return nil

	case strings.Contains(stmt.SQL, "information_schema.property_graphs"):
		if f.probeErr != nil {
			return f.probeErr
		}
		if f.graphPresent {
			row, err := spanner.NewRow([]string{"exists"}, []interface{}{int64(1)})
			if err != nil {
				return err
			}
			return fn(row)
		}
		return nil

	default:
		if f.queryErr != nil {
			return f.queryErr
		}
		for _, row := range f.queryRows {
			if err := fn(row); err != nil {
				return err
			}
		}
		return nil
	}
}

func (f *fakeDatabase) Close() { f.closed = true }

// fakeAdmin records every DDL batch it receives.
type fakeAdmin struct {
	batches [][]string
	err     error
	closed  bool
}

func (f *fakeAdmin) UpdateDDL(ctx context.Context, statements []string) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, statements)
	return nil
}

func (f *fakeAdmin) Close() error {
	f.closed = true
	return nil
}

// provisionedDatabase returns a fake whose schema already exists, the common
// starting point for write-path tests.
func provisionedDatabase() *fakeDatabase {
	return &fakeDatabase{
		tables:       []string{DefaultNodeTable, DefaultEdgeTable},
		graphPresent: true,
	}
}

func newTestStore(t *testing.T, db *fakeDatabase, admin *fakeAdmin, cfg Config) *Store {
	t.Helper()
	require.NotNil(t, db)
	require.NotNil(t, admin)
	return newStore(db, admin, cfg, nil)
}

func mustRow(t *testing.T, cols []string, vals []interface{}) *spanner.Row {
	t.Helper()
	row, err := spanner.NewRow(cols, vals)
	require.NoError(t, err)
	return row
}
