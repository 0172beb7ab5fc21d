package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/internal/markdown"
)

// Document is a parsed index document: front matter metadata plus the ordered
// post links extracted from the Markdown list.
type Document struct {
	Title    string
	Layout   string
	Checksum string
	Links    []DocumentLink
}

// DocumentLink is one curated reference as it appears in the document: the
// link text and its destination path.
type DocumentLink struct {
	Title string
	Path  string
}

// ParseDocument extracts the curated listing from an index document. Only
// links inside Markdown list items whose destination matches the post path
// layout (prefix + "/<slug>.md") are kept; prose links and external URLs are
// ignored. Order follows document order.
func ParseDocument(source []byte, postPathPrefix string) (*Document, error) {
	matter, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}

	sum := sha256.Sum256(source)
	doc := &Document{
		Title:    matter.Title,
		Layout:   matter.Layout,
		Checksum: hex.EncodeToString(sum[:]),
	}

	engine := goldmark.New()
	root := engine.Parser().Parse(text.NewReader(body))

	walkErr := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := node.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}
		if link := firstLink(item); link != nil {
			dest := strings.TrimSpace(string(link.Destination))
			if IsPostPath(dest, postPathPrefix) {
				doc.Links = append(doc.Links, DocumentLink{
					Title: linkText(link, body),
					Path:  normalizePostPath(dest),
				})
			}
		}
		// Children were inspected via firstLink; nested lists still get their
		// own ListItem visits.
		return ast.WalkSkipChildren, nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("index document walk: %w", walkErr)
	}

	return doc, nil
}

// IsPostPath reports whether a link destination points at a post document
// directly under the posts directory.
func IsPostPath(dest, prefix string) bool {
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "#") {
		return false
	}
	cleaned := normalizePostPath(dest)
	prefix = "/" + strings.Trim(prefix, "/")
	if !strings.HasPrefix(cleaned, prefix+"/") {
		return false
	}
	rest := strings.TrimPrefix(cleaned, prefix+"/")
	if rest == "" || strings.Contains(rest, "/") {
		return false
	}
	switch strings.ToLower(path.Ext(rest)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

func normalizePostPath(dest string) string {
	cleaned := strings.TrimSpace(dest)
	cleaned = strings.TrimPrefix(cleaned, "./")
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return path.Clean(cleaned)
}

// firstLink returns the first link found inside a list item, skipping any
// nested list so sub-items report their own links.
func firstLink(node ast.Node) *ast.Link {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if _, ok := child.(*ast.List); ok {
			continue
		}
		if link, ok := child.(*ast.Link); ok {
			return link
		}
		if link := firstLink(child); link != nil {
			return link
		}
	}
	return nil
}

// linkText collects the plain text of a link node.
func linkText(node ast.Node, source []byte) string {
	var sb strings.Builder
	collectText(node, source, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(node ast.Node, source []byte, sb *strings.Builder) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			sb.Write(typed.Segment.Value(source))
		case *ast.String:
			sb.Write(typed.Value)
		default:
			collectText(child, source, sb)
		}
	}
}
