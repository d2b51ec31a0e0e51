package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// extractionSchema describes the object the model is instructed to return.
// Types are loose on purpose: providers drift, and the field mapper copes
// with strings where booleans were asked for.
var extractionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":             map[string]any{"type": "string"},
		"document_category": map[string]any{"type": "string"},
		"permit_number":     map[string]any{"type": "string"},
		"status":            map[string]any{"type": "string"},
		"start_date":        map[string]any{"type": "string"},
		"end_date":          map[string]any{"type": "string"},
		"auto_renew":        map[string]any{"type": []any{"boolean", "string", "number"}},
		"jurisdiction":      map[string]any{"type": "string"},
		"issuing_authority": map[string]any{"type": "string"},
	},
}

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	b, err := json.Marshal(extractionSchema)
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", bytes.NewReader(b)); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile("extraction.json")
	if err != nil {
		panic(err)
	}
	return schema
}

// ValidateExtraction checks raw model output against the extraction schema.
func ValidateExtraction(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal extraction: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("extraction does not match schema: %w", err)
	}
	return nil
}
