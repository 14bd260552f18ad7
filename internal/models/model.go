// Package models defines the core data structures shared by the generation pipeline.
// It includes the graph document read from disk and the normalized model derived from it.
package models

import "slices"

const WildcardOrigin = "*"

// Model is the normalized view of a graph document. It is rebuilt from scratch
// on every generation run.
type Model struct {
	Cors      CorsOption `json:"cors"`
	Auth      Feature    `json:"auth"`
	AdminAuth AdminAuth  `json:"admin_auth"`
	Logging   Feature    `json:"logging"`
	Routes    []Route    `json:"routes"`
}

type Feature struct {
	Enabled bool `json:"enabled"`
}

type CorsOption struct {
	Enabled bool     `json:"enabled"`
	Origins []string `json:"origins,omitempty"`
}

// AdminAuth tracks admin authentication and the endpoints that acquired it
// through an admin middleware edge.
type AdminAuth struct {
	Enabled bool     `json:"enabled"`
	Routes  []string `json:"routes,omitempty"`
}

type Route struct {
	ID            string `json:"id"`
	Endpoint      string `json:"endpoint"`
	Method        string `json:"method"`
	AuthRequired  bool   `json:"auth_required"`
	AdminRequired bool   `json:"admin_required"`
}

func NewModel() *Model {
	return &Model{Routes: []Route{}}
}

// Wildcard reports whether the allowed origins are, or contain, "*".
func (c CorsOption) Wildcard() bool {
	return slices.Contains(c.Origins, WildcardOrigin)
}

// AddRoute appends an endpoint to the governed set unless it is already present.
func (a *AdminAuth) AddRoute(endpoint string) {
	if slices.Contains(a.Routes, endpoint) {
		return
	}
	a.Routes = append(a.Routes, endpoint)
}

// NeedsAuth reports whether the emitted server must define the authentication
// middleware. This is true when the auth flag is set and also when the flag is
// off but some route still requires authentication: the definition is emitted
// whenever a registration refers to it, so the generated source never calls an
// undefined function. NeedsAdminAuth follows the same rule.
func (m *Model) NeedsAuth() bool {
	return m.Auth.Enabled || slices.ContainsFunc(m.Routes, func(r Route) bool { return r.AuthRequired })
}

// NeedsAdminAuth reports whether the emitted server must define the admin middleware.
func (m *Model) NeedsAdminAuth() bool {
	return m.AdminAuth.Enabled || slices.ContainsFunc(m.Routes, func(r Route) bool { return r.AdminRequired })
}
