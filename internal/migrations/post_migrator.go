package migrations

import "strings"

// PostMigrator upgrades legacy post front matter to the current schema
// version. It satisfies the importer's payload migrator contract.
type PostMigrator struct {
	registry *Registry
}

// NewPostMigrator returns a migrator backed by the built-in post migrations.
func NewPostMigrator() *PostMigrator {
	return &PostMigrator{registry: NewPostRegistry()}
}

// NewPostMigratorWithRegistry returns a migrator backed by a custom registry.
func NewPostMigratorWithRegistry(registry *Registry) *PostMigrator {
	if registry == nil {
		registry = NewPostRegistry()
	}
	return &PostMigrator{registry: registry}
}

// Apply migrates the payload to the current post schema version. Payloads
// already at the current version pass through untouched.
func (m *PostMigrator) Apply(payload map[string]any) (map[string]any, error) {
	if m == nil || m.registry == nil || payload == nil {
		return payload, nil
	}
	version := detectPostVersion(payload)
	if version == CurrentPostVersion {
		return payload, nil
	}
	out, err := m.registry.Migrate(PostSlug, version, CurrentPostVersion, payload)
	if err != nil {
		return nil, err
	}
	delete(out, "schema_version")
	return out, nil
}

// detectPostVersion reads an explicit schema_version key when present and
// otherwise sniffs legacy shapes: a `categories` key marks a v1 document.
func detectPostVersion(payload map[string]any) string {
	if raw, ok := payload["schema_version"].(string); ok {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			return trimmed
		}
	}
	if _, ok := payload["categories"]; ok {
		return PostVersionV1
	}
	return CurrentPostVersion
}
