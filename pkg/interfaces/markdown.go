package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be safe for reuse across goroutines so a single
// parser instance can serve every render in a build.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file workflows for post documents: loading
// Markdown files with YAML front matter, converting their bodies into HTML,
// and importing them into the post store.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a Markdown post file with parsed metadata and content.
// The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	Slug         string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so import workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from post files. Fields align with the
// Jekyll-style key set and remain flexible thanks to the Extra map for
// pass-through values.
type FrontMatter struct {
	Layout      string         `yaml:"layout" json:"layout"`
	Title       string         `yaml:"title" json:"title"`
	Author      string         `yaml:"author" json:"author"`
	Date        time.Time      `yaml:"date" json:"date"`
	Description string         `yaml:"description" json:"description"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Published   bool           `yaml:"published" json:"published"`
	Extra       map[string]any `yaml:",inline" json:"extra"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
