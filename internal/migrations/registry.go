// Package migrations runs versioned front-matter payload migrations so
// legacy post documents import cleanly into the current schema.
package migrations

import (
	"strings"
	"sync"

	blogschema "github.com/goliatone/go-blog/internal/schema"
)

// Post front-matter schema versions. v1 used a Jekyll-style `categories`
// key; v2 renamed it to `tags`.
const (
	PostSlug           = "posts"
	PostVersionV1      = "posts@v1.0.0"
	PostVersionV2      = "posts@v2.0.0"
	CurrentPostVersion = PostVersionV2
)

// MigrationFunc transforms a front-matter payload between schema versions.
type MigrationFunc func(map[string]any) (map[string]any, error)

// Registry stores front-matter schema migrations and exposes a runner.
type Registry struct {
	mu       sync.RWMutex
	migrator *blogschema.Migrator
}

// NewRegistry constructs an empty migration registry.
func NewRegistry() *Registry {
	return &Registry{migrator: blogschema.NewMigrator()}
}

// NewPostRegistry constructs a registry with the built-in post migrations.
func NewPostRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.Register(PostSlug, PostVersionV1, PostVersionV2, migrateCategoriesToTags)
	return registry
}

// Register adds a migration step for a resource schema version.
func (r *Registry) Register(slug, from, to string, fn MigrationFunc) error {
	if r == nil || fn == nil {
		return blogschema.ErrInvalidSchemaVersion
	}
	fromVersion, err := blogschema.ParseVersion(from)
	if err != nil {
		return err
	}
	toVersion, err := blogschema.ParseVersion(to)
	if err != nil {
		return err
	}
	normalizedSlug := strings.TrimSpace(slug)
	if normalizedSlug == "" {
		normalizedSlug = fromVersion.Slug
	}
	if fromVersion.Slug != normalizedSlug || toVersion.Slug != normalizedSlug {
		return blogschema.ErrInvalidSchemaVersion
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.migrator == nil {
		r.migrator = blogschema.NewMigrator()
	}
	return r.migrator.Register(normalizedSlug, fromVersion.String(), toVersion.String(), blogschema.MigrationFunc(fn))
}

// Migrate applies registered migration steps.
func (r *Registry) Migrate(slug, from, to string, payload map[string]any) (map[string]any, error) {
	if r == nil {
		return nil, blogschema.ErrInvalidSchemaVersion
	}
	r.mu.RLock()
	migrator := r.migrator
	r.mu.RUnlock()
	if migrator == nil {
		return nil, blogschema.ErrInvalidSchemaVersion
	}
	return migrator.Migrate(strings.TrimSpace(slug), from, to, payload)
}

func migrateCategoriesToTags(payload map[string]any) (map[string]any, error) {
	raw, ok := payload["categories"]
	if !ok {
		return payload, nil
	}
	merged := append(stringList(payload["tags"]), stringList(raw)...)
	delete(payload, "categories")
	if len(merged) > 0 {
		payload["tags"] = merged
	}
	return payload, nil
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			if trimmed := strings.TrimSpace(entry); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			name, ok := entry.(string)
			if !ok {
				continue
			}
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(typed, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}
