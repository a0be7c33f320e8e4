package store

import (
	"cloud.google.com/go/spanner"

	"github.com/xkilldash9x/graphloom/api/schemas"
)

var (
	nodeColumns = []string{"id", "label", "properties"}
	edgeColumns = []string{"id", "dest_id", "edge_id", "label", "properties"}
)

// nodeRow is one upsert row for the node table.
type nodeRow struct {
	ID         int64
	Label      string
	Properties map[string]any
}

// edgeRow is one upsert row for the edge table, keyed by the composite
// (ID, DestID, EdgeID).
type edgeRow struct {
	ID         int64
	DestID     int64
	EdgeID     int64
	Label      string
	Properties map[string]any
}

// mutationBatch holds the column-oriented upsert rows derived from a set of
// graph documents. Rows are sets keyed by their primary key; slice order only
// exists to keep output deterministic.
type mutationBatch struct {
	Nodes []nodeRow
	Edges []edgeRow
}

type buildOptions struct {
	IncludeSource   bool
	BaseEntityLabel bool
	// StrictIdentity rejects a batch in which two distinct natural keys hash
	// to the same identifier instead of silently merging them.
	StrictIdentity bool
}

// buildMutations converts a batch of graph documents into node and edge
// upsert rows. Duplicate identities within the batch merge last-write-wins.
// Relationships whose endpoints are absent from the batch still produce edge
// rows; referential enforcement is the backend's job.
func buildMutations(docs []schemas.GraphDocument, opts buildOptions) (mutationBatch, error) {
	var batch mutationBatch

	nodeIndex := make(map[int64]int)
	edgeIndex := make(map[[3]int64]int)
	registry := newIdentityRegistry()

	resolveNode := func(n schemas.Node) (int64, error) {
		key := nodeKey(n.Type, n.ID)
		id := hashIdentifier(key)
		if opts.StrictIdentity {
			if err := registry.register(id, key); err != nil {
				return 0, err
			}
		}
		return id, nil
	}

	for _, doc := range docs {
		for _, node := range doc.Nodes {
			id, err := resolveNode(node)
			if err != nil {
				return mutationBatch{}, err
			}

			props := make(map[string]any, len(node.Properties)+2)
			for k, v := range node.Properties {
				props[k] = v
			}
			if opts.BaseEntityLabel {
				props["baseEntityLabel"] = true
			}
			if opts.IncludeSource {
				props["source"] = map[string]any{
					"page_content": doc.Source.PageContent,
					"metadata":     doc.Source.Metadata,
				}
			}

			row := nodeRow{ID: id, Label: node.Type, Properties: props}
			if i, ok := nodeIndex[id]; ok {
				batch.Nodes[i] = row
			} else {
				nodeIndex[id] = len(batch.Nodes)
				batch.Nodes = append(batch.Nodes, row)
			}
		}

		for _, rel := range doc.Relationships {
			sourceID, err := resolveNode(rel.Source)
			if err != nil {
				return mutationBatch{}, err
			}
			targetID, err := resolveNode(rel.Target)
			if err != nil {
				return mutationBatch{}, err
			}
			edgeID := hashIdentifier(edgeKey(sourceID, rel.Type, targetID))

			props := make(map[string]any, len(rel.Properties))
			for k, v := range rel.Properties {
				props[k] = v
			}

			row := edgeRow{
				ID:         sourceID,
				DestID:     targetID,
				EdgeID:     edgeID,
				Label:      rel.Type,
				Properties: props,
			}
			key := [3]int64{sourceID, targetID, edgeID}
			if i, ok := edgeIndex[key]; ok {
				batch.Edges[i] = row
			} else {
				edgeIndex[key] = len(batch.Edges)
				batch.Edges = append(batch.Edges, row)
			}
		}
	}

	return batch, nil
}

// mutations renders the batch as backend upserts, nodes first.
func (b mutationBatch) mutations(nodeTable, edgeTable string) []*spanner.Mutation {
	ms := make([]*spanner.Mutation, 0, len(b.Nodes)+len(b.Edges))
	for _, n := range b.Nodes {
		ms = append(ms, spanner.InsertOrUpdate(nodeTable, nodeColumns, []interface{}{
			n.ID, n.Label, spanner.NullJSON{Value: n.Properties, Valid: true},
		}))
	}
	for _, e := range b.Edges {
		ms = append(ms, spanner.InsertOrUpdate(edgeTable, edgeColumns, []interface{}{
			e.ID, e.DestID, e.EdgeID, e.Label, spanner.NullJSON{Value: e.Properties, Valid: true},
		}))
	}
	return ms
}
