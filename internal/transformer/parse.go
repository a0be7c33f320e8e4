package transformer

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/graphloom/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseGraphPayload turns the model's JSON array into a GraphDocument bound
// to its source document.
//
// Two passes: nodes first (an item without a "source" key carrying "id" and
// "type"; the first occurrence of an id wins), then relationships (items with
// "source", "target", and "type"). A relationship referencing an id that
// never appeared as a node is dropped rather than invented.
func parseGraphPayload(payload string, source schemas.Document) (schemas.GraphDocument, error) {
	doc := schemas.GraphDocument{
		Nodes:         []schemas.Node{},
		Relationships: []schemas.Relationship{},
		Source:        source,
	}

	var items []map[string]any
	if err := json.UnmarshalFromString(payload, &items); err != nil {
		return doc, fmt.Errorf("model response is not a JSON array: %w", err)
	}

	nodeByID := make(map[string]schemas.Node)

	for _, item := range items {
		if _, isRel := item["source"]; isRel {
			continue
		}
		id, okID := item["id"].(string)
		nodeType, okType := item["type"].(string)
		if !okID || !okType {
			continue
		}
		if _, seen := nodeByID[id]; seen {
			continue
		}
		node := schemas.Node{
			ID:         id,
			Type:       nodeType,
			Properties: propertiesOf(item),
		}
		doc.Nodes = append(doc.Nodes, node)
		nodeByID[id] = node
	}

	for _, item := range items {
		sourceID, okSource := item["source"].(string)
		targetID, okTarget := item["target"].(string)
		relType, okType := item["type"].(string)
		if !okSource || !okTarget || !okType {
			continue
		}
		sourceNode, haveSource := nodeByID[sourceID]
		targetNode, haveTarget := nodeByID[targetID]
		if !haveSource || !haveTarget {
			continue
		}
		doc.Relationships = append(doc.Relationships, schemas.Relationship{
			Source:     sourceNode,
			Target:     targetNode,
			Type:       relType,
			Properties: propertiesOf(item),
		})
	}

	return doc, nil
}

func propertiesOf(item map[string]any) map[string]any {
	raw, ok := item["properties"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	props := make(map[string]any, len(raw))
	for k, v := range raw {
		props[k] = v
	}
	return props
}
