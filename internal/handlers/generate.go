package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/routeforge/core/internal/parser"
	"github.com/routeforge/core/internal/pipeline"
)

const maxDocumentBytes = 1 << 20

// GenerateHandler accepts a graph document and responds with the emitted server source.
func GenerateHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, ok := build(w, r, p)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/javascript")
		w.WriteHeader(http.StatusOK)

		if _, err := io.WriteString(w, result.Source); err != nil {
			p.Logger().Error("failed to write generated source", "error", err)
		}
	}
}

// ResolveHandler accepts a graph document and responds with the normalized model as JSON.
func ResolveHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, ok := build(w, r, p)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")

		encoder := json.NewEncoder(w)
		if r.URL.Query().Get("pretty") == "true" {
			encoder.SetIndent("", "  ")
		}

		if err := encoder.Encode(result.Model); err != nil {
			p.Logger().Error("failed to encode model", "error", err)
		}
	}
}

// build runs the pipeline over the request body. On failure it has already
// written the error response.
func build(w http.ResponseWriter, r *http.Request, p *pipeline.Pipeline) (*pipeline.Result, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	format, err := parser.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return nil, false
	}

	result, err := p.Build(body, format)
	if err != nil {
		p.Logger().Debug("rejected graph document", "path", r.URL.Path, "error", err)
		http.Error(w, "Invalid graph: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return result, true
}
