package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Jekyll accepts several date spellings in front matter; try them in order of
// how often they show up in real posts.
var dateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the body
// without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// slug, raw content, and modification time. BodyHTML is intentionally left
// empty so callers can render lazily.
func BuildDocument(path, slug string, source []byte, modified time.Time) (*interfaces.Document, error) {
	matter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}

	return &interfaces.Document{
		FilePath:     path,
		Slug:         slug,
		FrontMatter:  matter,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Layout      string         `yaml:"layout"`
	Title       string         `yaml:"title"`
	Author      string         `yaml:"author"`
	Date        flexibleDate   `yaml:"date"`
	Description string         `yaml:"description"`
	Tags        flexibleTags   `yaml:"tags"`
	Published   *bool          `yaml:"published"`
	Custom      map[string]any `yaml:",inline"`
}

// flexibleDate accepts the date forms Jekyll tolerates: a bare date, a date
// with time and optional offset, or RFC3339.
type flexibleDate struct {
	time.Time
}

func (d *flexibleDate) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err == nil {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				d.Time = parsed
				return nil
			}
		}
		return fmt.Errorf("unrecognized date %q", raw)
	}

	var ts time.Time
	if err := unmarshal(&ts); err != nil {
		return err
	}
	d.Time = ts
	return nil
}

// flexibleTags accepts either a YAML list or a single scalar, optionally
// comma separated.
type flexibleTags []string

func (t *flexibleTags) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = normalizeTags(list)
		return nil
	}

	var scalar string
	if err := unmarshal(&scalar); err != nil {
		return err
	}
	*t = normalizeTags(strings.Split(scalar, ","))
	return nil
}

func normalizeTags(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, value := range values {
		tag := strings.TrimSpace(value)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	published := true
	if env.Published != nil {
		published = *env.Published
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}
	if env.Layout != "" {
		raw["layout"] = env.Layout
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date.Time
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	raw["published"] = published

	return interfaces.FrontMatter{
		Layout:      env.Layout,
		Title:       env.Title,
		Author:      env.Author,
		Date:        env.Date.Time,
		Description: env.Description,
		Tags:        append([]string(nil), env.Tags...),
		Published:   published,
		Extra:       cloneMap(env.Custom),
		Raw:         raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
