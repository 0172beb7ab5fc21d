package generator

import (
	"path"
	"strings"
)

const (
	indexOutputFile  = "index.html"
	manifestFileName = "manifest.json"
)

// postOutputPath maps a post slug to its artifact path below the output
// root: posts/<slug>/index.html.
func postOutputPath(slug string) string {
	return path.Join("posts", strings.TrimSpace(slug), "index.html")
}

// postRoute is the site-relative URL for a post page.
func postRoute(slug string) string {
	return "/posts/" + strings.TrimSpace(slug) + "/"
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}
