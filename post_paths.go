package blog

import (
	"errors"
	"path"
	"regexp"
	"strings"
	"time"
)

var (
	ErrPostPathRequired = errors.New("blog: post path is required")
	ErrPostPathInvalid  = errors.New("blog: post path is invalid")
	ErrPostPathOutside  = errors.New("blog: post path is outside the posts directory")
)

// postFilenamePattern matches the Jekyll-style YYYY-MM-DD- filename prefix.
var postFilenamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// PostPath captures parsed information about a post document path.
//
// Example:
// - Path:        "/_posts/2025-04-07-self-hosting-llms.md"
// - Prefix:      "/_posts"
// - Slug:        "2025-04-07-self-hosting-llms"
// - Stem:        "self-hosting-llms"
// - PublishedAt: 2025-04-07 (HasDate true)
type PostPath struct {
	Path        string
	Prefix      string
	Slug        string
	Stem        string
	PublishedAt time.Time
	HasDate     bool
}

// ParsePostPath parses a post document path against the given posts directory
// prefix (e.g. "/_posts"). Inputs may be relative or slash-prefixed; output
// is the canonical slash-prefixed path.
//
// Invariants:
// - The path must sit directly under the prefix (no nesting).
// - The document must carry a Markdown extension (.md or .markdown).
func ParsePostPath(prefix, raw string) (PostPath, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PostPath{}, ErrPostPathRequired
	}

	canonicalPrefix := CanonicalPostPathPrefix(prefix)
	cleaned := canonicalizeDocPath(trimmed)

	if !strings.HasPrefix(cleaned, canonicalPrefix+"/") {
		// Bare filenames are treated as relative to the posts directory.
		if strings.Contains(strings.Trim(cleaned, "/"), "/") {
			return PostPath{}, ErrPostPathOutside
		}
		cleaned = canonicalPrefix + cleaned
	}

	rest := strings.TrimPrefix(cleaned, canonicalPrefix+"/")
	if rest == "" {
		return PostPath{}, ErrPostPathInvalid
	}
	if strings.Contains(rest, "/") {
		return PostPath{}, ErrPostPathInvalid
	}

	ext := strings.ToLower(path.Ext(rest))
	if ext != ".md" && ext != ".markdown" {
		return PostPath{}, ErrPostPathInvalid
	}

	slug := strings.TrimSuffix(rest, path.Ext(rest))
	if slug == "" {
		return PostPath{}, ErrPostPathInvalid
	}

	parsed := PostPath{
		Path:   cleaned,
		Prefix: canonicalPrefix,
		Slug:   slug,
		Stem:   slug,
	}

	if match := postFilenamePattern.FindStringSubmatch(slug); match != nil {
		if date, err := time.Parse("2006-01-02", match[1]); err == nil {
			parsed.PublishedAt = date
			parsed.HasDate = true
			parsed.Stem = match[2]
		}
	}

	return parsed, nil
}

// CanonicalPostPathPrefix normalizes a posts directory prefix into the
// slash-prefixed form used across the module ("/_posts" by default).
func CanonicalPostPathPrefix(prefix string) string {
	cleaned := path.Clean("/" + strings.Trim(strings.TrimSpace(prefix), "/"))
	if cleaned == "/" {
		return "/_posts"
	}
	return cleaned
}

// PostPathFor derives the canonical repository path for a slug under the
// given posts directory prefix.
func PostPathFor(prefix, slug string) string {
	return path.Join(CanonicalPostPathPrefix(prefix), strings.TrimSpace(slug)) + ".md"
}

func canonicalizeDocPath(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\\", "/")
	cleaned = strings.TrimPrefix(cleaned, "./")
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return path.Clean(cleaned)
}
