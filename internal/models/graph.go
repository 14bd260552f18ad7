// Package models defines the core data structures shared by the generation pipeline.
// It includes the graph document read from disk and the normalized model derived from it.
package models

import "math"

const (
	NodeTypeEntry      = "entry"
	NodeTypeMiddleware = "middleware"

	DefaultMethod = "GET"
)

// GraphNode is one element of a graph document's node sequence. Callers keep
// nodes in a slice so document order stays explicit.
type GraphNode struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Source     Refs       `json:"source,omitempty" yaml:"source,omitempty"`
	Target     Refs       `json:"target,omitempty" yaml:"target,omitempty"`
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Refs holds the ids on one side of a node's edges. A single id and a list of
// ids both normalize to a Refs value.
type Refs []string

// Properties is the open key/value mapping attached to a node.
type Properties map[string]any

func (n GraphNode) IsRoute() bool {
	_, ok := n.Properties.Endpoint()
	return ok
}

func (n GraphNode) IsMiddleware() bool {
	return n.Properties.Type() == NodeTypeMiddleware
}

func (n GraphNode) IsEntry() bool {
	return n.Properties.Type() == NodeTypeEntry
}

// IsAdminMiddleware reports whether the node is a middleware node whose
// admin_required property is truthy.
func (n GraphNode) IsAdminMiddleware() bool {
	return n.IsMiddleware() && n.Properties.Truthy("admin_required")
}

func (p Properties) Type() string {
	t, _ := p["type"].(string)
	return t
}

// Endpoint returns the route path declared by the node. Only a non-empty
// string marks a node as a route.
func (p Properties) Endpoint() (string, bool) {
	endpoint, ok := p["endpoint"].(string)
	if !ok || endpoint == "" {
		return "", false
	}
	return endpoint, true
}

func (p Properties) Method() string {
	if method, ok := p["method"].(string); ok && method != "" {
		return method
	}
	return DefaultMethod
}

// Truthy applies loose truthiness to the value stored under key: absent,
// null, false, zero and the empty string are false, everything else is true.
func (p Properties) Truthy(key string) bool {
	return truthy(p[key])
}

// IsFalse reports whether key holds the boolean false and nothing else.
func (p Properties) IsFalse(key string) bool {
	b, ok := p[key].(bool)
	return ok && !b
}

// Origins returns the allowed_origins declared by the node. The second result
// reports whether the property is declared at all.
func (p Properties) Origins() ([]string, bool) {
	raw, ok := p["allowed_origins"]
	if !ok || !truthy(raw) {
		return nil, false
	}

	origins := []string{}
	switch v := raw.(type) {
	case string:
		origins = append(origins, v)
	case []string:
		origins = append(origins, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				origins = append(origins, s)
			}
		}
	}

	return origins, true
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	default:
		return true
	}
}
