// Package validate checks that a decoded graph document has the shape the
// resolver expects: a nodes sequence containing an entry node.
package validate

import (
	"errors"
	"fmt"

	"github.com/routeforge/core/internal/models"
)

var (
	ErrConfigShape  = errors.New("config shape error")
	ErrMissingEntry = errors.New("missing entry node")
)

// Validate inspects a decoded document without modifying it. Duplicate ids,
// dangling edge references and cycles are not checked.
func Validate(document any) error {
	root, ok := document.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: document root must be an object, got %s", ErrConfigShape, kindOf(document))
	}

	raw, present := root["nodes"]
	if !present {
		return fmt.Errorf("%w: missing nodes field", ErrConfigShape)
	}

	nodes, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("%w: nodes must be a sequence, got %s", ErrConfigShape, kindOf(raw))
	}

	for _, entry := range nodes {
		if isEntry(entry) {
			return nil
		}
	}

	return fmt.Errorf("%w: no node has properties.type \"entry\"", ErrMissingEntry)
}

func isEntry(entry any) bool {
	node, ok := entry.(map[string]any)
	if !ok {
		return false
	}

	props, ok := node["properties"].(map[string]any)
	if !ok {
		return false
	}

	t, _ := props["type"].(string)
	return t == models.NodeTypeEntry
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
