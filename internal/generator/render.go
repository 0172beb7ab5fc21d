package generator

import (
	"html/template"
	"time"

	blogposts "github.com/goliatone/go-blog/posts"
)

// SiteContext exposes site-wide information to templates.
type SiteContext struct {
	Title       string
	Description string
	Author      string
	Language    string
	BaseURL     string
}

// PostView is the template-facing shape of a stored post.
type PostView struct {
	Slug        string
	Title       string
	Author      string
	Description string
	Tags        []string
	PublishedAt time.Time
	URL         string
	Path        string
	Content     template.HTML
}

// IndexEntryView is one curated entry on the index page.
type IndexEntryView struct {
	Title string
	URL   string
	Path  string
}

// IndexContext is the data contract for the index template.
type IndexContext struct {
	Site    SiteContext
	Entries []IndexEntryView
	Posts   []PostView
}

// PostContext is the data contract for the post template.
type PostContext struct {
	Site SiteContext
	Post PostView
}

func newPostView(post *blogposts.Post, url string) PostView {
	view := PostView{
		Slug:        post.Slug,
		Title:       post.Title,
		Tags:        append([]string(nil), post.Tags...),
		PublishedAt: post.PublishedAt,
		URL:         url,
		Path:        post.Path,
		Content:     template.HTML(post.HTML),
	}
	if post.Author != nil {
		view.Author = *post.Author
	}
	if post.Description != nil {
		view.Description = *post.Description
	}
	return view
}
