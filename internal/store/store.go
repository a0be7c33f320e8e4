// Package store persists graph documents into Cloud Spanner under a
// schemaless data model: one node table, one interleaved edge table, and a
// property graph projecting both, with types carried in a dynamic label
// column and attributes in a JSON document column.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/xkilldash9x/graphloom/api/schemas"
)

// Defaults for the configurable schema object names.
const (
	DefaultNodeTable  = "GraphNode"
	DefaultEdgeTable  = "GraphEdge"
	DefaultGraphName  = "EntityGraph"
	DefaultDDLTimeout = 200 * time.Second
)

// Config holds the backend target and schema object names. All names are
// free-form strings supplied at construction.
type Config struct {
	// Database is the fully qualified database path:
	// projects/<project>/instances/<instance>/databases/<database>.
	Database  string
	NodeTable string
	EdgeTable string
	GraphName string
	// DDLTimeout bounds schema creation and teardown waits.
	DDLTimeout time.Duration
	// StrictIdentity makes AddGraphDocuments reject a batch in which two
	// distinct natural keys hash to one identifier. Off by default; the
	// collision probability of the truncated digest is normally accepted.
	StrictIdentity bool
}

func (c *Config) applyDefaults() {
	if c.NodeTable == "" {
		c.NodeTable = DefaultNodeTable
	}
	if c.EdgeTable == "" {
		c.EdgeTable = DefaultEdgeTable
	}
	if c.GraphName == "" {
		c.GraphName = DefaultGraphName
	}
	if c.DDLTimeout <= 0 {
		c.DDLTimeout = DefaultDDLTimeout
	}
}

// databaseClient abstracts the data-plane client so tests can run against a
// fake instead of a live backend.
type databaseClient interface {
	Apply(ctx context.Context, ms []*spanner.Mutation) (time.Time, error)
	// ReadRows executes stmt in a read-only snapshot and invokes fn for
	// every row.
	ReadRows(ctx context.Context, stmt spanner.Statement, fn func(*spanner.Row) error) error
	Close()
}

// schemaAdmin abstracts the schema-migration client. UpdateDDL applies the
// statements as one batch and blocks until the backend confirms completion.
type schemaAdmin interface {
	UpdateDDL(ctx context.Context, statements []string) error
	Close() error
}

// Store is an explicit handle owning its backend clients. Construct it once
// with New, share it by reference, and Close it on shutdown. All methods are
// safe for concurrent use; the backend's transaction manager arbitrates
// overlapping commits.
type Store struct {
	db    databaseClient
	admin schemaAdmin
	cfg   Config
	log   *zap.Logger
}

var _ schemas.GraphStore = (*Store)(nil)

// New connects to the configured Spanner database and returns a ready store.
// Schema objects are provisioned lazily on first write or via RefreshSchema.
// Client options (credentials, emulator endpoints) pass through to both the
// data and admin clients.
func New(ctx context.Context, cfg Config, logger *zap.Logger, opts ...option.ClientOption) (*Store, error) {
	cfg.applyDefaults()
	if cfg.Database == "" {
		return nil, errors.New("spanner database path is required")
	}

	client, err := spanner.NewClient(ctx, cfg.Database, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create spanner client: %w", err)
	}
	admin, err := newSpannerAdmin(ctx, cfg.Database, opts...)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create spanner admin client: %w", err)
	}

	return newStore(&spannerDatabase{client: client}, admin, cfg, logger), nil
}

// newStore wires a store from pre-built clients. Tests use it with fakes.
func newStore(db databaseClient, admin schemaAdmin, cfg Config, logger *zap.Logger) *Store {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		db:    db,
		admin: admin,
		cfg:   cfg,
		log:   logger.Named("store"),
	}
}

// AddGraphDocuments persists the documents' nodes and edges. Schema is
// verified first so a store used right after external creation or after
// Cleanup self-heals; the write is aborted when verification fails. Node and
// edge batches commit under one transaction: both land or neither does.
func (s *Store) AddGraphDocuments(ctx context.Context, docs []schemas.GraphDocument, includeSource, baseEntityLabel bool) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema verification failed: %w", err)
	}

	batch, err := buildMutations(docs, buildOptions{
		IncludeSource:   includeSource,
		BaseEntityLabel: baseEntityLabel,
		StrictIdentity:  s.cfg.StrictIdentity,
	})
	if err != nil {
		return err
	}

	ms := batch.mutations(s.cfg.NodeTable, s.cfg.EdgeTable)
	if len(ms) == 0 {
		return nil
	}

	// One atomic apply; transient backend errors propagate to the caller.
	if _, err := s.db.Apply(ctx, ms); err != nil {
		return fmt.Errorf("failed to commit graph mutations: %w", err)
	}

	s.log.Info("Graph documents persisted",
		zap.Int("documents", len(docs)),
		zap.Int("nodes", len(batch.Nodes)),
		zap.Int("edges", len(batch.Edges)),
	)
	return nil
}

// Query executes a caller-supplied read statement in a consistent-read
// snapshot and materializes every row as an ordered field-name/value pair
// set. An empty result is an empty slice, not an error. The caller owns
// statement construction; no validation happens here.
func (s *Store) Query(ctx context.Context, statement string) ([]schemas.ResultRow, error) {
	rows := make([]schemas.ResultRow, 0)
	err := s.db.ReadRows(ctx, spanner.Statement{SQL: statement}, func(r *spanner.Row) error {
		cols := r.ColumnNames()
		values := make(map[string]any, len(cols))
		for i, name := range cols {
			var gcv spanner.GenericColumnValue
			if err := r.Column(i, &gcv); err != nil {
				return fmt.Errorf("failed to read column %q: %w", name, err)
			}
			v, err := decodeColumn(gcv)
			if err != nil {
				return fmt.Errorf("failed to decode column %q: %w", name, err)
			}
			values[name] = v
		}
		rows = append(rows, schemas.ResultRow{Columns: cols, Values: values})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// RefreshSchema re-runs schema verification, reporting problems only through
// the log. Callers that need the outcome should use EnsureSchema.
func (s *Store) RefreshSchema(ctx context.Context) {
	if err := s.EnsureSchema(ctx); err != nil {
		s.log.Error("Schema refresh failed", zap.Error(err))
	}
}

// Cleanup drops the property graph, the edge table, then the node table,
// each guarded with IF EXISTS, under a bounded wait. Cleanup is best effort
// and never fails: its primary use is unconditional teardown in test
// fixtures, where "already absent" is the expected steady state.
func (s *Store) Cleanup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.DDLTimeout)
	defer cancel()

	stmts := dropStatements(s.cfg.GraphName, s.cfg.NodeTable, s.cfg.EdgeTable)
	if err := s.admin.UpdateDDL(ctx, stmts); err != nil {
		s.log.Debug("Cleanup ignored backend error", zap.Error(err))
	}
}

// Close releases both backend clients.
func (s *Store) Close() error {
	s.db.Close()
	if err := s.admin.Close(); err != nil {
		return fmt.Errorf("failed to close admin client: %w", err)
	}
	return nil
}
