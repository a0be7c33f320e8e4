package store

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"google.golang.org/api/option"
)

// spannerDatabase binds the databaseClient interface to a live client.
type spannerDatabase struct {
	client *spanner.Client
}

func (d *spannerDatabase) Apply(ctx context.Context, ms []*spanner.Mutation) (time.Time, error) {
	return d.client.Apply(ctx, ms)
}

func (d *spannerDatabase) ReadRows(ctx context.Context, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	return d.client.Single().Query(ctx, stmt).Do(fn)
}

func (d *spannerDatabase) Close() {
	d.client.Close()
}

// spannerAdmin binds the schemaAdmin interface to the database admin client,
// scoped to one database path.
type spannerAdmin struct {
	client   *database.DatabaseAdminClient
	database string
}

func newSpannerAdmin(ctx context.Context, databasePath string, opts ...option.ClientOption) (*spannerAdmin, error) {
	client, err := database.NewDatabaseAdminClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &spannerAdmin{client: client, database: databasePath}, nil
}

// UpdateDDL submits the statements as one schema-migration batch and blocks
// until the long-running operation completes.
func (a *spannerAdmin) UpdateDDL(ctx context.Context, statements []string) error {
	op, err := a.client.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   a.database,
		Statements: statements,
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (a *spannerAdmin) Close() error {
	return a.client.Close()
}
