// Package schema projects blog resources into schema documents for
// admin/API registries and runs versioned front-matter payload migrations.
package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
)

// Field describes a single projected resource field.
type Field struct {
	Name     string
	Type     string
	Required bool
}

// Resource is a named set of fields projected into a schema document.
type Resource struct {
	Slug   string
	Name   string
	Fields []Field
}

// Projection contains the schema document for a resource.
type Projection struct {
	Name     string
	Document map[string]any
}

// PostResource describes the post resource as stored by the engine.
func PostResource() Resource {
	return Resource{
		Slug: "post",
		Name: "Post",
		Fields: []Field{
			{Name: "slug", Type: "string", Required: true},
			{Name: "path", Type: "string", Required: true},
			{Name: "layout", Type: "string"},
			{Name: "title", Type: "string", Required: true},
			{Name: "author", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "tags", Type: "array"},
			{Name: "status", Type: "string"},
			{Name: "published_at", Type: "string", Required: true},
			{Name: "body", Type: "string", Required: true},
			{Name: "html", Type: "string"},
			{Name: "checksum", Type: "string", Required: true},
		},
	}
}

// Project builds an OpenAPI-style document for the resource.
func Project(resource Resource, version Version) (*Projection, error) {
	slugValue := strings.TrimSpace(resource.Slug)
	if slugValue == "" {
		return nil, fmt.Errorf("schema: resource slug required for projection")
	}
	title := strings.TrimSpace(resource.Name)
	if title == "" {
		title = slugValue
	}

	properties := make(map[string]any, len(resource.Fields))
	required := make([]any, 0, len(resource.Fields))
	for _, field := range resource.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		property := map[string]any{}
		if field.Type != "" {
			property["type"] = field.Type
		}
		if field.Type == "array" {
			property["items"] = map[string]any{"type": "string"}
		}
		properties[name] = property
		if field.Required {
			required = append(required, name)
		}
	}
	component := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		component["required"] = required
	}

	doc := map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   title,
			"version": strings.TrimPrefix(version.SemVer, "v"),
		},
		"components": map[string]any{
			"schemas": map[string]any{
				componentName(slugValue): component,
			},
		},
		"x-blog": map[string]any{
			"resource": slugValue,
			"schema":   version.String(),
		},
	}
	return &Projection{Name: slugValue, Document: doc}, nil
}

func componentName(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		normalized = value
	}
	return strings.ReplaceAll(normalized, "-", "_")
}
