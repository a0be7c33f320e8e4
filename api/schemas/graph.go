package schemas

// -- Canonical Graph Document Data Model --
//
// A GraphDocument is the unit of ingestion: the set of typed nodes and typed,
// directed relationships extracted from one source text. It is an immutable
// snapshot; the persistence layer never mutates it.

// Node represents a single entity extracted from text. Its natural key is the
// (Type, ID) pair; the storage layer derives the physical identifier from it.
type Node struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Relationship is a directed, typed link between two nodes. Endpoints are
// referenced by their natural keys, not by storage identifiers.
type Relationship struct {
	Source     Node           `json:"source"`
	Target     Node           `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Document is a piece of source text plus arbitrary metadata (filename,
// ingestion id, and so on).
type Document struct {
	PageContent string         `json:"page_content"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// GraphDocument bundles the nodes and relationships extracted from a single
// source document together with that document.
type GraphDocument struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
	Source        Document       `json:"source"`
}

// ResultRow is one row of a read query: the column names in result order and
// the decoded value for each column. Values carry native Go types (int64,
// string, bool, float64, time.Time, decoded JSON); NULL columns are nil.
type ResultRow struct {
	Columns []string       `json:"columns"`
	Values  map[string]any `json:"values"`
}
