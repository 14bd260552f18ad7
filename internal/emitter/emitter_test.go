package emitter

import (
	"strings"
	"testing"

	"github.com/routeforge/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEmit_AuthScenario(t *testing.T) {
	m := models.NewModel()
	m.Auth.Enabled = true
	m.Routes = append(m.Routes, models.Route{ID: "3", Endpoint: "/user", Method: "GET", AuthRequired: true})

	want := "const express = require('express');\n" +
		"\n" +
		"const app = express();\n" +
		"app.use(express.json());\n" +
		"\n" +
		"function authMiddleware(req, res, next) {\n" +
		"  if (!req.headers.authorization) {\n" +
		"    return res.status(401).json({ error: 'Unauthorized' });\n" +
		"  }\n" +
		"  next();\n" +
		"}\n" +
		"\n" +
		"app.get('/user', authMiddleware, (req, res) => {\n" +
		"  res.json({ message: 'User data' });\n" +
		"});\n" +
		"\n" +
		"const PORT = 3000;\n" +
		"app.listen(PORT, () => {\n" +
		"  console.log(`Server running on port ${PORT}`);\n" +
		"});\n"

	assert.Equal(t, want, Emit(m))
}

func TestEmit_Sections(t *testing.T) {
	t.Run("cors import only when enabled", func(t *testing.T) {
		m := models.NewModel()
		assert.NotContains(t, Emit(m), "require('cors')")

		m.Cors = models.CorsOption{Enabled: true, Origins: []string{"https://a.example"}}
		out := Emit(m)
		assert.True(t, strings.HasPrefix(out, "const express = require('express');\nconst cors = require('cors');\n"))
	})

	t.Run("wildcard renders the bare literal", func(t *testing.T) {
		m := models.NewModel()
		m.Cors = models.CorsOption{Enabled: true, Origins: []string{"*"}}

		out := Emit(m)

		assert.Contains(t, out, "app.use(cors({ origin: '*' }));\n")
		assert.NotContains(t, out, "['*']")
	})

	t.Run("wildcard among other origins still renders the bare literal", func(t *testing.T) {
		m := models.NewModel()
		m.Cors = models.CorsOption{Enabled: true, Origins: []string{"https://a.example", "*"}}

		assert.Contains(t, Emit(m), "app.use(cors({ origin: '*' }));\n")
	})

	t.Run("explicit origins render a list", func(t *testing.T) {
		m := models.NewModel()
		m.Cors = models.CorsOption{Enabled: true, Origins: []string{"https://a.example", "https://b.example"}}

		assert.Contains(t, Emit(m), "app.use(cors({ origin: ['https://a.example', 'https://b.example'] }));\n")
	})

	t.Run("middleware definitions in fixed order", func(t *testing.T) {
		m := models.NewModel()
		m.Auth.Enabled = true
		m.AdminAuth.Enabled = true
		m.Logging.Enabled = true

		out := Emit(m)

		auth := strings.Index(out, "function authMiddleware")
		admin := strings.Index(out, "function adminMiddleware")
		logging := strings.Index(out, "function loggingMiddleware")
		assert.True(t, auth >= 0 && auth < admin && admin < logging)
		assert.Contains(t, out, "return res.status(403).json({ error: 'Forbidden' });")
		assert.Contains(t, out, "if (req.headers.authorization !== 'admin') {")
		assert.Contains(t, out, "console.log(`[${new Date().toISOString()}] ${req.method} ${req.url}`);")
	})

	t.Run("disabled middleware is not defined", func(t *testing.T) {
		m := models.NewModel()
		m.Routes = append(m.Routes, models.Route{ID: "1", Endpoint: "/about", Method: "GET"})

		out := Emit(m)

		assert.NotContains(t, out, "function ")
		assert.Contains(t, out, "app.get('/about', (req, res) => {\n  res.json({ message: 'About us' });\n});\n")
	})

	t.Run("route requiring auth defines the guard without an auth node", func(t *testing.T) {
		m := models.NewModel()
		m.Routes = append(m.Routes, models.Route{ID: "1", Endpoint: "/user", Method: "GET", AuthRequired: true})

		out := Emit(m)

		assert.Contains(t, out, "function authMiddleware")
		assert.Contains(t, out, "app.get('/user', authMiddleware, (req, res) => {")
	})
}

func TestEmit_RouteMiddlewareOrder(t *testing.T) {
	m := models.NewModel()
	m.Auth.Enabled = true
	m.AdminAuth = models.AdminAuth{Enabled: true, Routes: []string{"/admin"}}
	m.Logging.Enabled = true
	m.Routes = append(m.Routes,
		models.Route{ID: "5", Endpoint: "/admin", Method: "GET", AuthRequired: true, AdminRequired: true},
		models.Route{ID: "6", Endpoint: "/login", Method: "POST", AuthRequired: false},
		models.Route{ID: "7", Endpoint: "/orders", Method: "Delete", AuthRequired: true},
	)

	out := Emit(m)

	assert.Contains(t, out, "app.get('/admin', authMiddleware, adminMiddleware, loggingMiddleware, (req, res) => {\n  res.json({ message: 'Admin dashboard' });")
	assert.Contains(t, out, "app.post('/login', loggingMiddleware, (req, res) => {\n  res.json({ message: 'Login successful' });")
	assert.Contains(t, out, "app.delete('/orders', authMiddleware, loggingMiddleware, (req, res) => {\n  res.json({ message: 'Orders resource' });")

	admin := strings.Index(out, "app.get('/admin'")
	login := strings.Index(out, "app.post('/login'")
	orders := strings.Index(out, "app.delete('/orders'")
	assert.True(t, admin < login && login < orders)
}

func TestEmit_RouteMethod(t *testing.T) {
	tc := []struct {
		name   string
		method string
		want   string
	}{
		{name: "uppercase", method: "PATCH", want: "app.patch('/orders'"},
		{name: "surrounding space", method: " put ", want: "app.put('/orders'"},
		{name: "embedded path", method: "GET /x", want: "app.get('/orders'"},
		{name: "hyphenated", method: "purge-cache", want: "app.get('/orders'"},
		{name: "call syntax", method: "get('/x');//", want: "app.get('/orders'"},
		{name: "empty", method: "", want: "app.get('/orders'"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			m := models.NewModel()
			m.Routes = append(m.Routes, models.Route{ID: "1", Endpoint: "/orders", Method: tt.method})

			out := Emit(m)

			assert.Contains(t, out, tt.want+", (req, res) => {")
		})
	}
}

func TestEmit_Listen(t *testing.T) {
	m := models.NewModel()

	assert.True(t, strings.HasSuffix(Emit(m), "const PORT = 3000;\napp.listen(PORT, () => {\n  console.log(`Server running on port ${PORT}`);\n});\n"))
	assert.Contains(t, New(Options{Port: 8081}).Emit(m), "const PORT = 8081;\n")
	assert.Contains(t, New(Options{Port: -1}).Emit(m), "const PORT = 3000;\n")
}

func TestEmit_Deterministic(t *testing.T) {
	m := models.NewModel()
	m.Cors = models.CorsOption{Enabled: true, Origins: []string{"https://a.example"}}
	m.Auth.Enabled = true
	m.Logging.Enabled = true
	m.Routes = append(m.Routes,
		models.Route{ID: "1", Endpoint: "/news", Method: "GET", AuthRequired: true},
		models.Route{ID: "2", Endpoint: "/blogs", Method: "GET"},
	)

	assert.Equal(t, Emit(m), Emit(m))
}

func TestJSString(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "/user", want: `'/user'`},
		{name: "single quote", input: "/o'neil", want: `'/o\'neil'`},
		{name: "backslash", input: `a\b`, want: `'a\\b'`},
		{name: "newline", input: "a\nb", want: `'a\nb'`},
		{name: "line separator", input: "a\u2028b", want: `'a\u2028b'`},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jsString(tt.input))
		})
	}
}
