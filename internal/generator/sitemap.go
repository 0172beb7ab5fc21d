package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type sitemapEntry struct {
	Location string
	LastMod  time.Time
}

// buildSitemap lists the index page and every rendered post page. Last
// modification times come from post data so unchanged content produces an
// identical document.
func buildSitemap(baseURL string, entries []sitemapEntry) string {
	base := baseURLWithFallback(baseURL)

	deduped := make([]sitemapEntry, 0, len(entries))
	seen := map[string]struct{}{}
	for _, entry := range entries {
		location := strings.TrimSpace(entry.Location)
		if location == "" {
			continue
		}
		if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
			location = absoluteURL(base, location)
		}
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		deduped = append(deduped, sitemapEntry{Location: location, LastMod: entry.LastMod})
	}

	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Location < deduped[j].Location
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range deduped {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(entry.Location)))
		if !entry.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod.UTC().Format(time.RFC3339)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

func buildRobots(baseURL string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", baseURLWithFallback(baseURL)))
	}
	return builder.String()
}
