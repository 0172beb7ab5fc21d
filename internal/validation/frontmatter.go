package validation

import (
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// frontMatterSchema is the contract every post document must satisfy before
// it enters the store: non-empty title and date, tags as a string array once
// normalized. Unknown keys pass through untouched.
var frontMatterSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"layout":      map[string]any{"type": "string"},
		"title":       map[string]any{"type": "string", "minLength": 1},
		"author":      map[string]any{"type": "string"},
		"date":        map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"published": map[string]any{"type": "boolean"},
	},
	"required":             []any{"title", "date"},
	"additionalProperties": true,
}

// FrontMatterValidator validates post front matter. The schema compiles once
// and the compiled form is shared across goroutines.
type FrontMatterValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	compileE error
}

// NewFrontMatterValidator returns a validator for the post front-matter schema.
func NewFrontMatterValidator() *FrontMatterValidator {
	return &FrontMatterValidator{}
}

// Validate checks a raw front-matter payload. Errors are
// *PayloadValidationError carrying per-field issues.
func (v *FrontMatterValidator) Validate(payload map[string]any) error {
	v.once.Do(func() {
		v.compiled, v.compileE = compileSchema(frontMatterSchema)
	})
	if v.compileE != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, v.compileE)
	}
	return validateCompiled(v.compiled, payload)
}
