// Package models defines the core data structures shared by the generation pipeline.
// It includes the graph document read from disk and the normalized model derived from it.
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProperties(t *testing.T) {
	t.Run("endpoint marks a route", func(t *testing.T) {
		node := GraphNode{ID: "3", Properties: Properties{"endpoint": "/user"}}

		endpoint, ok := node.Properties.Endpoint()

		assert.True(t, ok)
		assert.Equal(t, "/user", endpoint)
		assert.True(t, node.IsRoute())
	})

	t.Run("empty or non-string endpoint is not a route", func(t *testing.T) {
		assert.False(t, GraphNode{Properties: Properties{"endpoint": ""}}.IsRoute())
		assert.False(t, GraphNode{Properties: Properties{"endpoint": 42.0}}.IsRoute())
		assert.False(t, GraphNode{}.IsRoute())
	})

	t.Run("method defaults to GET", func(t *testing.T) {
		assert.Equal(t, "GET", Properties{}.Method())
		assert.Equal(t, "GET", Properties{"method": ""}.Method())
		assert.Equal(t, "POST", Properties{"method": "POST"}.Method())
	})

	t.Run("truthy follows loose truthiness", func(t *testing.T) {
		tc := []struct {
			name  string
			value any
			want  bool
		}{
			{name: "absent", value: nil, want: false},
			{name: "true", value: true, want: true},
			{name: "false", value: false, want: false},
			{name: "non-empty string", value: "yes", want: true},
			{name: "empty string", value: "", want: false},
			{name: "zero", value: 0.0, want: false},
			{name: "one", value: 1.0, want: true},
			{name: "yaml int", value: 1, want: true},
			{name: "empty list", value: []any{}, want: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				props := Properties{}
				if tt.value != nil {
					props["flag"] = tt.value
				}
				assert.Equal(t, tt.want, props.Truthy("flag"))
			})
		}
	})

	t.Run("is false only for boolean false", func(t *testing.T) {
		assert.True(t, Properties{"auth_required": false}.IsFalse("auth_required"))
		assert.False(t, Properties{"auth_required": true}.IsFalse("auth_required"))
		assert.False(t, Properties{"auth_required": 0.0}.IsFalse("auth_required"))
		assert.False(t, Properties{"auth_required": "false"}.IsFalse("auth_required"))
		assert.False(t, Properties{}.IsFalse("auth_required"))
	})

	t.Run("origins from list", func(t *testing.T) {
		origins, ok := Properties{"allowed_origins": []any{"https://a.example", 3.0, "https://b.example"}}.Origins()

		assert.True(t, ok)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)
	})

	t.Run("origins from single string", func(t *testing.T) {
		origins, ok := Properties{"allowed_origins": "*"}.Origins()

		assert.True(t, ok)
		assert.Equal(t, []string{"*"}, origins)
	})

	t.Run("origins absent", func(t *testing.T) {
		_, ok := Properties{"log_requests": true}.Origins()
		assert.False(t, ok)
	})
}

func TestGraphNodeKinds(t *testing.T) {
	entry := GraphNode{Properties: Properties{"type": "entry"}}
	admin := GraphNode{Properties: Properties{"type": "middleware", "admin_required": true}}
	plain := GraphNode{Properties: Properties{"type": "middleware", "auth_required": true}}

	assert.True(t, entry.IsEntry())
	assert.False(t, entry.IsMiddleware())
	assert.True(t, admin.IsAdminMiddleware())
	assert.True(t, plain.IsMiddleware())
	assert.False(t, plain.IsAdminMiddleware())
}
