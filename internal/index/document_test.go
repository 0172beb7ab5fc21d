package index

import (
	"os"
	"testing"
)

func TestParseDocumentExtractsOrderedLinks(t *testing.T) {
	source, err := os.ReadFile("testdata/index.md")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	doc, err := ParseDocument(source, "/_posts")
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if doc.Title != "Engineering Blog" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if doc.Checksum == "" {
		t.Fatalf("expected document checksum")
	}

	// The prose link and the external list item are ignored; the duplicate
	// survives parsing and is collapsed later by the sync.
	if len(doc.Links) != 3 {
		t.Fatalf("expected 3 post links, got %d: %+v", len(doc.Links), doc.Links)
	}
	if doc.Links[0].Path != "/_posts/2025-04-07-self-hosting-llms.md" {
		t.Fatalf("unexpected first link %+v", doc.Links[0])
	}
	if doc.Links[0].Title != "Self-Hosting LLMs: Lessons from the Trenches" {
		t.Fatalf("unexpected first title %q", doc.Links[0].Title)
	}
	if doc.Links[1].Path != "/_posts/2025-03-17-semantic-caching.md" {
		t.Fatalf("unexpected second link %+v", doc.Links[1])
	}
	if doc.Links[2].Path != doc.Links[0].Path {
		t.Fatalf("expected duplicate to survive parsing, got %+v", doc.Links[2])
	}
}

func TestParseDocumentEmptyList(t *testing.T) {
	source := []byte("---\ntitle: Empty\n---\n\nNothing curated yet.\n")

	doc, err := ParseDocument(source, "/_posts")
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Links) != 0 {
		t.Fatalf("expected no links, got %+v", doc.Links)
	}
}

func TestIsPostPath(t *testing.T) {
	cases := []struct {
		dest string
		want bool
	}{
		{"/_posts/2025-04-07-self-hosting-llms.md", true},
		{"_posts/2025-04-07-self-hosting-llms.md", true},
		{"./_posts/notes.markdown", true},
		{"/_posts/nested/post.md", false},
		{"/_posts/readme.txt", false},
		{"/pages/about.md", false},
		{"https://example.com/_posts/post.md", false},
		{"#section", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsPostPath(tc.dest, "/_posts"); got != tc.want {
			t.Errorf("IsPostPath(%q) = %v, want %v", tc.dest, got, tc.want)
		}
	}
}
