package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Post documents and index fixture shared by content tests. The slugs carry
// Jekyll-style date prefixes so filename date fallback paths stay covered.
const (
	FixtureSelfHostingSlug = "2025-04-07-self-hosting-llms"
	FixtureCachingSlug     = "2025-03-17-semantic-caching"

	FixtureSelfHostingDoc = `---
title: Self-Hosting LLMs in Production
author: Ana Torres
date: 2025-04-07
tags: [llm, infrastructure]
description: Capacity planning, quantization trade-offs, and serving stacks.
---

Running models on your own hardware starts with capacity planning.

## Sizing the cluster

A 70B parameter model at 4-bit quantization still wants 40GB of VRAM.
`

	FixtureCachingDoc = `---
title: Semantic Caching for LLM Applications
author: Priya Natarajan
date: 2025-03-17
tags: [llm, caching]
---

Exact-match caches miss paraphrased prompts entirely. Embedding-based
lookup recovers most of those hits.
`

	FixtureIndexDoc = `---
title: Posts
---

# Posts

- [Self-Hosting LLMs in Production](/_posts/2025-04-07-self-hosting-llms.md)
- [Semantic Caching for LLM Applications](/_posts/2025-03-17-semantic-caching.md)
`
)

// WriteContentTree lays the fixture posts and index document out under temp
// directories and returns their locations.
func WriteContentTree(t *testing.T) (postsDir, indexPath string) {
	t.Helper()

	postsDir = t.TempDir()
	docs := map[string]string{
		FixtureSelfHostingSlug + ".md": FixtureSelfHostingDoc,
		FixtureCachingSlug + ".md":     FixtureCachingDoc,
	}
	for name, doc := range docs {
		if err := os.WriteFile(filepath.Join(postsDir, name), []byte(doc), 0o644); err != nil {
			t.Fatalf("write post fixture %s: %v", name, err)
		}
	}

	indexPath = filepath.Join(t.TempDir(), "index.md")
	if err := os.WriteFile(indexPath, []byte(FixtureIndexDoc), 0o644); err != nil {
		t.Fatalf("write index fixture: %v", err)
	}
	return postsDir, indexPath
}
