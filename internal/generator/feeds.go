package generator

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	blogposts "github.com/goliatone/go-blog/posts"
)

const defaultFeedLimit = 100

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	PublishedAt time.Time
}

// feedLimit returns the configured feed cap, falling back to the default.
func (s *service) feedLimit() int {
	if s.cfg.FeedLimit > 0 {
		return s.cfg.FeedLimit
	}
	return defaultFeedLimit
}

// buildFeedItems selects the newest published posts, capped at the feed
// limit. Posts arrive newest-first from the store; the sort keeps ties
// stable on the link so re-runs produce identical feeds.
func (s *service) buildFeedItems(posts []*blogposts.Post, urls map[string]string) []feedItem {
	items := make([]feedItem, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		link := absoluteURL(s.cfg.BaseURL, urls[post.Slug])
		item := feedItem{
			Title:       post.Title,
			Link:        link,
			GUID:        link,
			PublishedAt: post.PublishedAt,
		}
		if post.Description != nil {
			item.Summary = normalizeWhitespace(*post.Description)
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].Link < items[j].Link
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if limit := s.feedLimit(); len(items) > limit {
		items = append([]feedItem(nil), items[:limit]...)
	}
	return items
}

// buildRSSFeed renders an RSS 2.0 document. Timestamps come from post data
// only, so unchanged content yields an identical feed.
func buildRSSFeed(site SiteContext, items []feedItem) string {
	baseLink := baseURLWithFallback(site.BaseURL)
	lastBuild := newestItemTime(items)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(siteTitle(site))))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(siteDescription(site))))
	if lang := strings.TrimSpace(site.Language); lang != "" {
		builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(lang)))
	}
	if author := strings.TrimSpace(site.Author); author != "" {
		builder.WriteString(fmt.Sprintf("    <managingEditor>%s</managingEditor>\n", escapeXML(author)))
	}
	if !lastBuild.IsZero() {
		builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", lastBuild.UTC().Format(time.RFC1123Z)))
	}
	for _, item := range items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.GUID)))
		if !item.PublishedAt.IsZero() {
			builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(time.RFC1123Z)))
		}
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

// buildAtomFeed renders an Atom document for the same item set.
func buildAtomFeed(site SiteContext, items []feedItem) string {
	baseLink := baseURLWithFallback(site.BaseURL)
	feedID := baseLink + "/atom.xml"
	updated := newestItemTime(items)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(feedID)))
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(siteTitle(site))))
	if !updated.IsZero() {
		builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", updated.UTC().Format(time.RFC3339)))
	}
	builder.WriteString(fmt.Sprintf(`  <link rel="alternate" href="%s" />`+"\n", escapeXMLAttr(baseLink)))
	builder.WriteString(fmt.Sprintf(`  <link rel="self" href="%s" />`+"\n", escapeXMLAttr(feedID)))
	if author := strings.TrimSpace(site.Author); author != "" {
		builder.WriteString(fmt.Sprintf("  <author><name>%s</name></author>\n", escapeXML(author)))
	}
	for _, item := range items {
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf(`    <link href="%s" />`+"\n", escapeXMLAttr(item.Link)))
		if !item.PublishedAt.IsZero() {
			builder.WriteString(fmt.Sprintf("    <published>%s</published>\n", item.PublishedAt.UTC().Format(time.RFC3339)))
			builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", item.PublishedAt.UTC().Format(time.RFC3339)))
		}
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("    <summary>%s</summary>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("  </entry>\n")
	}
	builder.WriteString(`</feed>` + "\n")
	return builder.String()
}

func newestItemTime(items []feedItem) time.Time {
	var newest time.Time
	for _, item := range items {
		if item.PublishedAt.After(newest) {
			newest = item.PublishedAt
		}
	}
	return newest
}

func siteTitle(site SiteContext) string {
	if title := strings.TrimSpace(site.Title); title != "" {
		return title
	}
	return baseURLWithFallback(site.BaseURL)
}

func siteDescription(site SiteContext) string {
	if desc := strings.TrimSpace(site.Description); desc != "" {
		return desc
	}
	return "Latest posts"
}

func normalizeWhitespace(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return strings.Join(strings.Fields(input), " ")
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

func escapeXMLAttr(value string) string {
	return html.EscapeString(value)
}
