package schemas

import "context"

// GraphStore is the persistence surface for graph documents. Implementations
// own their backend connections and must be safe for concurrent use.
type GraphStore interface {
	// AddGraphDocuments persists the documents' nodes and edges atomically.
	// When includeSource is set, each node carries a nested "source" property
	// with the originating text and metadata; when baseEntityLabel is set,
	// each node carries "baseEntityLabel": true.
	AddGraphDocuments(ctx context.Context, docs []GraphDocument, includeSource, baseEntityLabel bool) error

	// Query executes a caller-supplied read statement and materializes every
	// row. The caller owns statement construction.
	Query(ctx context.Context, statement string) ([]ResultRow, error)

	// RefreshSchema re-verifies (and, if needed, creates) the backing tables
	// and graph view. Failures are logged, never returned.
	RefreshSchema(ctx context.Context)

	// Cleanup tears down the graph view and both tables. Best effort: it
	// never fails, even when the objects are already gone.
	Cleanup(ctx context.Context)

	// Close releases the backend clients.
	Close() error
}

// GraphTransformer turns source documents into graph documents.
type GraphTransformer interface {
	Transform(ctx context.Context, docs []Document) ([]GraphDocument, error)
}

// TextGenerator is the narrow seam to a generative model used by the
// transformer. Implementations must return a raw JSON payload.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}
