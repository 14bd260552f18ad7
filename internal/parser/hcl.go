package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclRoot decodes every node block of an HCL graph document.
type hclRoot struct {
	Nodes  []*hclNode `hcl:"node,block"`
	Remain hcl.Body   `hcl:",remain"`
}

type hclNode struct {
	ID     string   `hcl:"id,label"`
	Remain hcl.Body `hcl:",remain"`
}

// decodeHCL converts `node "<id>" { ... }` blocks into the same generic shape
// the JSON decoder produces. A file without node blocks has no nodes field.
func decodeHCL(data []byte, filename string) (map[string]any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	doc := map[string]any{}
	if len(root.Nodes) == 0 {
		return doc, nil
	}

	nodes := make([]any, 0, len(root.Nodes))
	for _, block := range root.Nodes {
		node, err := decodeHCLNode(block)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", block.ID, err)
		}
		nodes = append(nodes, node)
	}
	doc["nodes"] = nodes

	return doc, nil
}

func decodeHCLNode(block *hclNode) (map[string]any, error) {
	attrs, diags := block.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	node := map[string]any{"id": block.ID}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}

		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		node[name] = goVal
	}

	return node, nil
}

// ctyToGo maps a cty value onto the plain Go values encoding/json would
// produce for the equivalent JSON.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		items := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			item, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := map[string]any{}
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			item, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			out[key.AsString()] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
