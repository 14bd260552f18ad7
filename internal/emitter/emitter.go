// Package emitter renders a normalized model as the source of an Express server.
//
// Output is assembled by a fixed sequence of section writers (imports, app
// setup, CORS, middleware definitions, routes, startup), each appending to a
// shared builder. Emission has no side effects and is deterministic: the same
// model always yields the same bytes.
package emitter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/routeforge/core/internal/models"
)

const DefaultPort = 3000

// routeVerb matches method names usable as a member of the app object.
var routeVerb = regexp.MustCompile(`^[a-z_$][a-z0-9_$]*$`)

const (
	authMiddleware    = "authMiddleware"
	adminMiddleware   = "adminMiddleware"
	loggingMiddleware = "loggingMiddleware"
)

// Options controls the parts of the output that are not derived from the model.
type Options struct {
	// Port is the port the generated server listens on. Zero means DefaultPort.
	Port int
}

type Emitter struct {
	port int
}

type section func(b *strings.Builder, m *models.Model)

func New(opts Options) *Emitter {
	port := opts.Port
	if port <= 0 {
		port = DefaultPort
	}
	return &Emitter{port: port}
}

// Port reports the port the generated server listens on.
func (e *Emitter) Port() int {
	return e.port
}

// Emit renders m with the default options.
func Emit(m *models.Model) string {
	return New(Options{}).Emit(m)
}

func (e *Emitter) Emit(m *models.Model) string {
	var b strings.Builder

	for _, write := range []section{
		writeImports,
		writeApp,
		writeCors,
		writeAuthMiddleware,
		writeAdminMiddleware,
		writeLoggingMiddleware,
		writeRoutes,
		e.writeListen,
	} {
		write(&b, m)
	}

	return b.String()
}

func writeImports(b *strings.Builder, m *models.Model) {
	b.WriteString("const express = require('express');\n")
	if m.Cors.Enabled {
		b.WriteString("const cors = require('cors');\n")
	}
	b.WriteString("\n")
}

func writeApp(b *strings.Builder, _ *models.Model) {
	b.WriteString("const app = express();\n")
	b.WriteString("app.use(express.json());\n")
}

// writeCors renders the bare wildcard when any allowed origin is "*", and a
// list literal of the declared origins otherwise.
func writeCors(b *strings.Builder, m *models.Model) {
	if !m.Cors.Enabled {
		b.WriteString("\n")
		return
	}

	origin := jsString(models.WildcardOrigin)
	if !m.Cors.Wildcard() {
		quoted := make([]string, 0, len(m.Cors.Origins))
		for _, o := range m.Cors.Origins {
			quoted = append(quoted, jsString(o))
		}
		origin = "[" + strings.Join(quoted, ", ") + "]"
	}

	fmt.Fprintf(b, "app.use(cors({ origin: %s }));\n\n", origin)
}

func writeAuthMiddleware(b *strings.Builder, m *models.Model) {
	if !m.NeedsAuth() {
		return
	}
	b.WriteString("function " + authMiddleware + "(req, res, next) {\n")
	b.WriteString("  if (!req.headers.authorization) {\n")
	b.WriteString("    return res.status(401).json({ error: 'Unauthorized' });\n")
	b.WriteString("  }\n")
	b.WriteString("  next();\n")
	b.WriteString("}\n\n")
}

func writeAdminMiddleware(b *strings.Builder, m *models.Model) {
	if !m.NeedsAdminAuth() {
		return
	}
	b.WriteString("function " + adminMiddleware + "(req, res, next) {\n")
	b.WriteString("  if (req.headers.authorization !== 'admin') {\n")
	b.WriteString("    return res.status(403).json({ error: 'Forbidden' });\n")
	b.WriteString("  }\n")
	b.WriteString("  next();\n")
	b.WriteString("}\n\n")
}

func writeLoggingMiddleware(b *strings.Builder, m *models.Model) {
	if !m.Logging.Enabled {
		return
	}
	b.WriteString("function " + loggingMiddleware + "(req, res, next) {\n")
	b.WriteString("  console.log(`[${new Date().toISOString()}] ${req.method} ${req.url}`);\n")
	b.WriteString("  next();\n")
	b.WriteString("}\n\n")
}

func writeRoutes(b *strings.Builder, m *models.Model) {
	for _, route := range m.Routes {
		writeRoute(b, route, m.Logging.Enabled)
	}
}

func writeRoute(b *strings.Builder, route models.Route, logging bool) {
	args := []string{jsString(route.Endpoint)}
	args = append(args, routeMiddleware(route, logging)...)

	fmt.Fprintf(b, "app.%s(%s, (req, res) => {\n", verb(route.Method), strings.Join(args, ", "))
	fmt.Fprintf(b, "  res.json({ message: %s });\n", jsString(Message(route.Endpoint)))
	b.WriteString("});\n\n")
}

// verb lowercases method for use as app.<verb>. Names that are not plain
// identifiers fall back to the default method.
func verb(method string) string {
	v := strings.ToLower(strings.TrimSpace(method))
	if !routeVerb.MatchString(v) {
		return strings.ToLower(models.DefaultMethod)
	}
	return v
}

// routeMiddleware lists the middleware attached to a route, always in the
// order auth, admin, logging.
func routeMiddleware(route models.Route, logging bool) []string {
	chain := []string{}
	if route.AuthRequired {
		chain = append(chain, authMiddleware)
	}
	if route.AdminRequired {
		chain = append(chain, adminMiddleware)
	}
	if logging {
		chain = append(chain, loggingMiddleware)
	}
	return chain
}

func (e *Emitter) writeListen(b *strings.Builder, _ *models.Model) {
	fmt.Fprintf(b, "const PORT = %d;\n", e.port)
	b.WriteString("app.listen(PORT, () => {\n")
	b.WriteString("  console.log(`Server running on port ${PORT}`);\n")
	b.WriteString("});\n")
}

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// jsString renders s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}
