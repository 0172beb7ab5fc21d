package validation

import (
	"errors"
	"testing"
	"time"
)

func validPayload() map[string]any {
	return map[string]any{
		"layout":    "post",
		"title":     "Self-Hosting LLMs: Lessons from the Trenches",
		"author":    "Engineering Team",
		"date":      time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		"tags":      []string{"llm", "infrastructure"},
		"published": true,
	}
}

func TestFrontMatterValidatorAccepts(t *testing.T) {
	validator := NewFrontMatterValidator()

	if err := validator.Validate(validPayload()); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestFrontMatterValidatorPassThroughKeys(t *testing.T) {
	validator := NewFrontMatterValidator()

	payload := validPayload()
	payload["canonical"] = "https://blog.example.com/post"
	payload["series"] = map[string]any{"name": "llm-ops", "part": 2}

	if err := validator.Validate(payload); err != nil {
		t.Fatalf("expected unknown keys to pass through, got %v", err)
	}
}

func TestFrontMatterValidatorRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing title", func(p map[string]any) { delete(p, "title") }},
		{"empty title", func(p map[string]any) { p["title"] = "" }},
		{"missing date", func(p map[string]any) { delete(p, "date") }},
		{"tags not strings", func(p map[string]any) { p["tags"] = []any{"llm", 42} }},
		{"published not bool", func(p map[string]any) { p["published"] = "yes" }},
	}

	validator := NewFrontMatterValidator()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mutate(payload)

			err := validator.Validate(payload)
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !errors.Is(err, ErrSchemaValidation) {
				t.Fatalf("expected ErrSchemaValidation, got %v", err)
			}

			var payloadErr *PayloadValidationError
			if !errors.As(err, &payloadErr) {
				t.Fatalf("expected PayloadValidationError, got %T", err)
			}
			if len(payloadErr.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
		})
	}
}

func TestValidatePayloadCustomSchema(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"slug": map[string]any{"type": "string", "pattern": "^[a-z0-9-]+$"},
		},
		"required": []any{"slug"},
	}

	if err := ValidatePayload(schema, map[string]any{"slug": "a-valid-slug"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if err := ValidatePayload(schema, map[string]any{"slug": "Not Valid"}); err == nil {
		t.Fatal("expected pattern failure")
	}
}
