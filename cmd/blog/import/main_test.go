package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPostDoc = `---
title: Self-Hosting LLMs in Production
author: Ana Torres
date: 2025-04-07
tags: [llm, infrastructure]
---

Running models on your own hardware starts with capacity planning.
`

const testIndexDoc = `---
title: Posts
---

- [Self-Hosting LLMs in Production](/_posts/2025-04-07-self-hosting-llms.md)
`

func writeImportTree(t *testing.T) (postsDir, indexPath string) {
	t.Helper()

	postsDir = t.TempDir()
	post := filepath.Join(postsDir, "2025-04-07-self-hosting-llms.md")
	if err := os.WriteFile(post, []byte(testPostDoc), 0o644); err != nil {
		t.Fatalf("write post document: %v", err)
	}

	indexPath = filepath.Join(t.TempDir(), "index.md")
	if err := os.WriteFile(indexPath, []byte(testIndexDoc), 0o644); err != nil {
		t.Fatalf("write index document: %v", err)
	}
	return postsDir, indexPath
}

func TestRunImport(t *testing.T) {
	postsDir, indexPath := writeImportTree(t)

	var out bytes.Buffer
	err := runImport([]string{
		"-posts-dir", postsDir,
		"-index", indexPath,
	}, &out)
	if err != nil {
		t.Fatalf("run import: %v", err)
	}

	if !strings.Contains(out.String(), "imported 1") {
		t.Fatalf("expected one imported document, got output %q", out.String())
	}
}

func TestRunImportDryRun(t *testing.T) {
	postsDir, indexPath := writeImportTree(t)

	var out bytes.Buffer
	err := runImport([]string{
		"-posts-dir", postsDir,
		"-index", indexPath,
		"-dry-run",
		"-sync-index=false",
	}, &out)
	if err != nil {
		t.Fatalf("run import: %v", err)
	}

	if !strings.Contains(out.String(), "imported 1") {
		t.Fatalf("expected dry run to report one document, got output %q", out.String())
	}
}

func TestRunImportMissingDirectory(t *testing.T) {
	_, indexPath := writeImportTree(t)

	err := runImport([]string{
		"-posts-dir", filepath.Join(t.TempDir(), "missing"),
		"-index", indexPath,
	}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for missing posts directory")
	}
}
