package schema

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	crud "github.com/goliatone/go-crud"
)

func TestParseVersion(t *testing.T) {
	cases := []struct {
		input string
		want  Version
		ok    bool
	}{
		{"posts@v1.0.0", Version{Slug: "posts", SemVer: "v1.0.0"}, true},
		{"posts@2.0.0", Version{Slug: "posts", SemVer: "v2.0.0"}, true},
		{" posts @ v1.2.3 ", Version{Slug: "posts", SemVer: "v1.2.3"}, true},
		{"posts", Version{}, false},
		{"@v1.0.0", Version{}, false},
		{"posts@v1.0", Version{}, false},
		{"posts@vX.Y.Z", Version{}, false},
		{"", Version{}, false},
	}

	for _, tc := range cases {
		got, err := ParseVersion(tc.input)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseVersion(%q): %v", tc.input, err)
				continue
			}
			if got != tc.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidSchemaVersion) {
			t.Errorf("ParseVersion(%q): expected ErrInvalidSchemaVersion, got %v", tc.input, err)
		}
	}
}

func TestVersionString(t *testing.T) {
	if got := DefaultVersion("posts").String(); got != "posts@v1.0.0" {
		t.Fatalf("unexpected default version %q", got)
	}
	if got := (Version{SemVer: "v2.0.0"}).String(); got != "v2.0.0" {
		t.Fatalf("unexpected slugless version %q", got)
	}
}

func TestMigratorChainsSteps(t *testing.T) {
	migrator := NewMigrator()
	if err := migrator.Register("posts", "posts@v1.0.0", "posts@v1.1.0", func(payload map[string]any) (map[string]any, error) {
		payload["step"] = "v1.1.0"
		return payload, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := migrator.Register("posts", "posts@v1.1.0", "posts@v2.0.0", func(payload map[string]any) (map[string]any, error) {
		payload["step"] = "v2.0.0"
		return payload, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	input := map[string]any{"value": "start"}
	out, err := migrator.Migrate("posts", "posts@v1.0.0", "posts@v2.0.0", input)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if out["step"] != "v2.0.0" {
		t.Fatalf("expected final step v2.0.0, got %v", out["step"])
	}
	if _, ok := input["step"]; ok {
		t.Fatal("expected input payload to stay untouched")
	}
}

func TestMigratorDetectsCycles(t *testing.T) {
	migrator := NewMigrator()
	_ = migrator.Register("posts", "posts@v1.0.0", "posts@v1.1.0", func(p map[string]any) (map[string]any, error) { return p, nil })
	_ = migrator.Register("posts", "posts@v1.1.0", "posts@v1.0.0", func(p map[string]any) (map[string]any, error) { return p, nil })

	if _, err := migrator.Migrate("posts", "posts@v1.0.0", "posts@v2.0.0", map[string]any{}); err == nil {
		t.Fatal("expected cycle error")
	}
}

func TestMigratorMissingStep(t *testing.T) {
	migrator := NewMigrator()
	if _, err := migrator.Migrate("posts", "posts@v1.0.0", "posts@v2.0.0", map[string]any{}); err == nil {
		t.Fatal("expected missing step error")
	}
}

func TestProjectPostResource(t *testing.T) {
	projection, err := Project(PostResource(), DefaultVersion("post"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if projection.Name != "post" {
		t.Fatalf("unexpected projection name %q", projection.Name)
	}

	components := projection.Document["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	component, ok := schemas["post"].(map[string]any)
	if !ok {
		t.Fatalf("expected post schema component, got %v", schemas)
	}
	properties := component["properties"].(map[string]any)
	for _, name := range []string{"slug", "title", "tags", "published_at", "checksum"} {
		if _, ok := properties[name]; !ok {
			t.Errorf("expected property %q", name)
		}
	}
	tags := properties["tags"].(map[string]any)
	if tags["type"] != "array" {
		t.Fatalf("expected tags to project as array, got %v", tags["type"])
	}
	required := component["required"].([]any)
	found := false
	for _, entry := range required {
		if entry == "title" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected title to be required, got %v", required)
	}
	meta := projection.Document["x-blog"].(map[string]any)
	if meta["schema"] != "post@v1.0.0" {
		t.Fatalf("unexpected schema version %v", meta["schema"])
	}
}

func TestProjectRequiresSlug(t *testing.T) {
	if _, err := Project(Resource{Name: "Post"}, DefaultVersion("post")); err == nil {
		t.Fatal("expected slug error")
	}
}

func TestRegisterProjectionsWithCRUDRegistry(t *testing.T) {
	resource := fmt.Sprintf("post_%d", time.Now().UnixNano())
	projected := PostResource()
	projected.Slug = resource

	projection, err := Project(projected, DefaultVersion(resource))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	adapter := crudRegistryAdapter{resource: resource}
	if err := RegisterProjections(context.Background(), adapter, []*Projection{projection}); err != nil {
		t.Fatalf("register: %v", err)
	}

	entry, ok := crud.GetSchema(resource)
	if !ok {
		t.Fatalf("expected schema %s registered", resource)
	}
	if entry.Document["openapi"] == nil {
		t.Fatal("expected openapi document in registry")
	}
	components, ok := entry.Document["components"].(map[string]any)
	if !ok {
		t.Fatal("expected components in document")
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		t.Fatal("expected schemas in document")
	}
	if _, ok := schemas[componentName(resource)]; !ok {
		t.Fatalf("expected %s schema component", componentName(resource))
	}
	if meta, ok := entry.Document["x-blog"].(map[string]any); !ok || meta["resource"] != resource {
		t.Fatalf("expected x-blog metadata for %s", resource)
	}
}

// crudRegistryAdapter bridges schema projections into the go-crud registry.
type crudRegistryAdapter struct {
	resource string
}

func (a crudRegistryAdapter) Register(_ context.Context, name string, doc map[string]any) error {
	resource := name
	if a.resource != "" {
		resource = a.resource
	}
	plural := resource + "s"
	if ok := crud.RegisterSchemaDocument(resource, plural, doc); !ok {
		return fmt.Errorf("crud registry rejected document")
	}
	return nil
}
