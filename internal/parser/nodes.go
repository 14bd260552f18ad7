package parser

import (
	"strconv"

	"github.com/routeforge/core/internal/models"
)

// Nodes converts the nodes sequence of a decoded document into typed nodes,
// keeping document order. Entries that are not objects are dropped and a
// properties value that is not an object becomes empty, which leaves the node
// inert for resolution.
func Nodes(document any) []models.GraphNode {
	root, ok := document.(map[string]any)
	if !ok {
		return nil
	}

	raw, ok := root["nodes"].([]any)
	if !ok {
		return nil
	}

	nodes := make([]models.GraphNode, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		nodes = append(nodes, buildNode(obj))
	}

	return nodes
}

func buildNode(obj map[string]any) models.GraphNode {
	node := models.GraphNode{
		Source: buildRefs(obj["source"]),
		Target: buildRefs(obj["target"]),
	}

	if id, ok := idString(obj["id"]); ok {
		node.ID = id
	}

	if name, ok := obj["name"].(string); ok {
		node.Name = name
	}

	if props, ok := obj["properties"].(map[string]any); ok {
		node.Properties = models.Properties(props)
	} else {
		node.Properties = models.Properties{}
	}

	return node
}

func buildRefs(v any) models.Refs {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		refs := make(models.Refs, 0, len(val))
		for _, item := range val {
			if id, ok := idString(item); ok {
				refs = append(refs, id)
			}
		}
		return refs
	default:
		if id, ok := idString(val); ok {
			return models.Refs{id}
		}
		return nil
	}
}

func idString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	default:
		return "", false
	}
}
