// Package parser provides utilities for parsing and transforming input data.
// It handles format detection, decoding of graph documents, and conversion to typed nodes.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// DetectFormat picks a format from the file extension, falling back to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	default:
		return FormatJSON
	}
}

// ParseFormat maps a user supplied format name onto a Format. The empty
// string is returned unchanged so callers can fall back to DetectFormat.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Decode turns raw document bytes into a generic root value. Objects decode
// to map[string]any and sequences to []any whatever the input format, so the
// result can be validated before any typed conversion happens.
func Decode(data []byte, format Format) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty graph document")
	}

	var root any
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", FormatJSON, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", FormatYAML, err)
		}
		root = normalizeYAML(root)
	case FormatHCL:
		doc, err := decodeHCL(data, "graph.hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", FormatHCL, err)
		}
		root = doc
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return root, nil
}

// normalizeYAML rewrites map[any]any values, which yaml.v3 produces for
// mappings with non-string keys, into map[string]any.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}
