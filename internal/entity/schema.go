package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildImportSchema returns the JSON Schema (draft 2020-12 subset) that
// operator-supplied import files must match: an array of product objects.
// Records stay open (additionalProperties true) since model output is not
// schema-bound, but the recognized keys must have the right shapes when
// present.
func BuildImportSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"product_name":    map[string]any{"type": "string"},
				"brand_name":      map[string]any{"type": "string"},
				"designer":        map[string]any{"type": "string"},
				"year":            map[string]any{"type": []string{"string", "integer"}},
				"type_of_product": map[string]any{"type": "string"},
				"all_colors": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"page_reference": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"file_path": map[string]any{"type": "string"},
						"page_numbers": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "integer"},
						},
					},
					"required": []string{"file_path"},
				},
			},
			"required": []string{"page_reference"},
		},
	}
}

// ValidateImportJSON validates "data" against the import schema and decodes
// it into product records.
func ValidateImportJSON(data []byte) ([]Product, error) {
	schemaMap := BuildImportSchema()
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("json does not match schema: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}
	return products, nil
}
