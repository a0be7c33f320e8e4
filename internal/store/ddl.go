package store

import "fmt"

// DDL templates for the two storage tables and the property graph. Arbitrary
// node and edge types share this one physical schema: the label column holds
// the type and the properties column holds the open-ended attribute document.

func nodeTableDDL(nodeTable string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
  id INT64 NOT NULL,
  label STRING(MAX),
  properties JSON,
) PRIMARY KEY (id)`, nodeTable)
}

// The edge table is interleaved in the node table so that deleting a node
// cascades to its outgoing edges. The composite key lets parallel edges of
// different types coexist between the same pair of nodes.
func edgeTableDDL(nodeTable, edgeTable string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
  id INT64 NOT NULL,
  dest_id INT64 NOT NULL,
  edge_id INT64 NOT NULL,
  label STRING(MAX),
  properties JSON,
) PRIMARY KEY (id, dest_id, edge_id),
  INTERLEAVE IN PARENT %s ON DELETE CASCADE`, edgeTable, nodeTable)
}

func propertyGraphDDL(graphName, nodeTable, edgeTable string) string {
	return fmt.Sprintf(`CREATE PROPERTY GRAPH %s
  NODE TABLES (
    %s
      DYNAMIC LABEL (label)
      DYNAMIC PROPERTIES (properties)
  )
  EDGE TABLES (
    %s
      SOURCE KEY (id) REFERENCES %s(id)
      DESTINATION KEY (dest_id) REFERENCES %s(id)
      DYNAMIC LABEL (label)
      DYNAMIC PROPERTIES (properties)
  )`, graphName, nodeTable, edgeTable, nodeTable, nodeTable)
}

func dropStatements(graphName, nodeTable, edgeTable string) []string {
	return []string{
		fmt.Sprintf("DROP PROPERTY GRAPH IF EXISTS %s", graphName),
		fmt.Sprintf("DROP TABLE IF EXISTS %s", edgeTable),
		fmt.Sprintf("DROP TABLE IF EXISTS %s", nodeTable),
	}
}
