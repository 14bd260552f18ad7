package resolver

import "github.com/routeforge/core/internal/models"

// arena indexes the node sequence by id. When ids repeat, the first node in
// document order wins, for both nodes and route records.
type arena struct {
	nodes  map[string]*models.GraphNode
	routes map[string]int
}

func newArena(nodes []models.GraphNode, routes []models.Route) *arena {
	a := &arena{
		nodes:  make(map[string]*models.GraphNode, len(nodes)),
		routes: make(map[string]int, len(routes)),
	}

	for i := range nodes {
		id := nodes[i].ID
		if _, exists := a.nodes[id]; exists {
			continue
		}
		a.nodes[id] = &nodes[i]
	}

	for i, route := range routes {
		if _, exists := a.routes[route.ID]; !exists {
			a.routes[route.ID] = i
		}
	}

	return a
}

func (a *arena) targets(id string) models.Refs {
	if n, ok := a.nodes[id]; ok {
		return n.Target
	}
	return nil
}

// route returns the index of the route record that belongs to id, provided
// the node indexed under id is itself a route.
func (a *arena) route(id string) (int, bool) {
	n, ok := a.nodes[id]
	if !ok || !n.IsRoute() {
		return 0, false
	}
	idx, ok := a.routes[id]
	return idx, ok
}
