// Package markdown loads Jekyll-style post documents: YAML front matter
// delimited by --- lines followed by a Markdown body. It covers parsing and
// metadata extraction, filesystem discovery, HTML rendering, and the import
// workflow that persists documents into the post store.
package markdown
