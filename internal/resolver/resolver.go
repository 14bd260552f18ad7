// Package resolver turns an ordered node sequence into the normalized model
// consumed by the emitter.
//
// Resolution runs in two passes. The first classifies middleware nodes into
// feature flags and collects route records in document order. The second
// propagates admin protection from admin middleware nodes onto the routes
// they target. Malformed nodes never fail resolution; they are inert.
package resolver

import (
	"fmt"
	"strings"

	"github.com/routeforge/core/internal/models"
)

type Propagation string

const (
	// PropagationDirect only marks routes listed in an admin middleware's own
	// target. It is the default.
	PropagationDirect Propagation = "direct"
	// PropagationTransitive follows target edges from each admin middleware
	// node until no new node is reached.
	PropagationTransitive Propagation = "transitive"
)

type Options struct {
	Propagation Propagation
}

func ParsePropagation(name string) (Propagation, error) {
	switch Propagation(strings.ToLower(strings.TrimSpace(name))) {
	case "", PropagationDirect:
		return PropagationDirect, nil
	case PropagationTransitive:
		return PropagationTransitive, nil
	default:
		return "", fmt.Errorf("unknown propagation mode %q", name)
	}
}

// Resolve builds a model using single-hop propagation.
func Resolve(nodes []models.GraphNode) *models.Model {
	return ResolveWith(nodes, Options{Propagation: PropagationDirect})
}

func ResolveWith(nodes []models.GraphNode, opts Options) *models.Model {
	model := models.NewModel()

	classify(nodes, model)

	a := newArena(nodes, model.Routes)
	switch opts.Propagation {
	case PropagationTransitive:
		propagateTransitive(nodes, a, model)
	default:
		propagateDirect(nodes, a, model)
	}

	return model
}

func classify(nodes []models.GraphNode, model *models.Model) {
	for _, node := range nodes {
		props := node.Properties

		if node.IsMiddleware() {
			if origins, ok := props.Origins(); ok {
				model.Cors.Enabled = true
				model.Cors.Origins = origins
			}
			if props.Truthy("auth_required") {
				model.Auth.Enabled = true
			}
			if props.Truthy("admin_required") {
				model.AdminAuth.Enabled = true
			}
			if props.Truthy("log_requests") {
				model.Logging.Enabled = true
			}
		}

		endpoint, ok := props.Endpoint()
		if !ok {
			continue
		}

		model.Routes = append(model.Routes, models.Route{
			ID:            node.ID,
			Endpoint:      endpoint,
			Method:        props.Method(),
			AuthRequired:  !props.IsFalse("auth_required"),
			AdminRequired: props.Truthy("admin_required"),
		})
	}
}

func propagateDirect(nodes []models.GraphNode, a *arena, model *models.Model) {
	for _, node := range nodes {
		if !node.IsAdminMiddleware() {
			continue
		}
		for _, id := range node.Target {
			markAdmin(a, model, id)
		}
	}
}

// propagateTransitive seeds a worklist with the targets of every admin
// middleware node and keeps extending it with the targets of reached nodes
// until the reached set stops growing. Cycles terminate because each id is
// visited once.
func propagateTransitive(nodes []models.GraphNode, a *arena, model *models.Model) {
	reached := []string{}
	seen := map[string]bool{}
	visit := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		reached = append(reached, id)
	}

	for _, node := range nodes {
		if !node.IsAdminMiddleware() {
			continue
		}
		for _, id := range node.Target {
			visit(id)
		}
	}

	for i := 0; i < len(reached); i++ {
		for _, next := range a.targets(reached[i]) {
			visit(next)
		}
	}

	for _, id := range reached {
		markAdmin(a, model, id)
	}
}

func markAdmin(a *arena, model *models.Model, id string) {
	idx, ok := a.route(id)
	if !ok {
		return
	}

	route := &model.Routes[idx]
	route.AdminRequired = true
	model.AdminAuth.AddRoute(route.Endpoint)
}
