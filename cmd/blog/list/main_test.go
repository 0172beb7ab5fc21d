package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const listPostDoc = `---
title: Semantic Caching for LLM Applications
author: Priya Natarajan
date: 2025-03-17
tags: [llm, caching]
---

Exact-match caches miss paraphrased prompts entirely.
`

const listIndexDoc = `---
title: Posts
---

- [Semantic Caching for LLM Applications](/_posts/2025-03-17-semantic-caching.md)
`

func TestRunListPrintsCuratedPairs(t *testing.T) {
	postsDir := t.TempDir()
	post := filepath.Join(postsDir, "2025-03-17-semantic-caching.md")
	if err := os.WriteFile(post, []byte(listPostDoc), 0o644); err != nil {
		t.Fatalf("write post document: %v", err)
	}

	indexPath := filepath.Join(t.TempDir(), "index.md")
	if err := os.WriteFile(indexPath, []byte(listIndexDoc), 0o644); err != nil {
		t.Fatalf("write index document: %v", err)
	}

	var out bytes.Buffer
	err := runList([]string{
		"-posts-dir", postsDir,
		"-index", indexPath,
	}, &out)
	if err != nil {
		t.Fatalf("run list: %v", err)
	}

	want := "Semantic Caching for LLM Applications\t/_posts/2025-03-17-semantic-caching.md\n"
	if out.String() != want {
		t.Fatalf("unexpected listing output %q, want %q", out.String(), want)
	}
}

func TestRunListEmptyIndex(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.md")
	if err := os.WriteFile(indexPath, []byte("---\ntitle: Posts\n---\n"), 0o644); err != nil {
		t.Fatalf("write index document: %v", err)
	}

	var out bytes.Buffer
	err := runList([]string{
		"-posts-dir", t.TempDir(),
		"-index", indexPath,
	}, &out)
	if err != nil {
		t.Fatalf("run list: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty listing, got %q", out.String())
	}
}
