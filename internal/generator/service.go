// Package generator builds the static site from stored content: the curated
// index page, one page per post, feeds, sitemap, robots, and theme assets.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	blogindexes "github.com/goliatone/go-blog/indexes"
	"github.com/goliatone/go-blog/internal/domain"
	internalindex "github.com/goliatone/go-blog/internal/index"
	"github.com/goliatone/go-blog/internal/logging"
	internalposts "github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/activity"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRendererRequired = errors.New("generator: template renderer is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	BaseURL         string
	Title           string
	Description     string
	Author          string
	Language        string
	CleanBuild      bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	// FeedLimit caps feed entries; zero falls back to defaultFeedLimit.
	FeedLimit     int
	IncludeDrafts bool
	IncludeFuture bool
	Theme         ThemeConfig
}

// BuildOptions narrows the scope of a generator run. The include flags widen
// the configured defaults for a single run.
type BuildOptions struct {
	DryRun        bool
	IncludeDrafts bool
	IncludeFuture bool
}

// Artifact identifies one generated output file.
type Artifact struct {
	Path        string
	Checksum    string
	ContentType string
	Size        int64
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt  int
	AssetsBuilt int
	FeedsBuilt  int
	BrokenRefs  []string
	Artifacts   []Artifact
	Duration    time.Duration
	DryRun      bool
}

// PostSource lists stored posts for rendering.
type PostSource interface {
	List(ctx context.Context, opts internalposts.ListOptions) ([]*blogposts.Post, error)
}

// IndexSource resolves the curated index ordering.
type IndexSource interface {
	List(ctx context.Context, input internalindex.ListInput) ([]internalindex.PostRef, error)
}

// URLResolver maps a post slug to its public URL.
type URLResolver interface {
	Resolve(slug string) (string, error)
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Posts    PostSource
	Index    IndexSource
	Renderer interfaces.TemplateRenderer
	Storage  interfaces.StorageProvider
	URLs     URLResolver
	Notifier activity.Notifier
	Logger   interfaces.Logger
}

// NewService wires a generator with the provided configuration and
// dependencies. When no renderer is supplied the built-in html/template
// renderer is used, overlaid with the theme directory when configured.
func NewService(cfg Config, deps Dependencies) Service {
	svc := &service{
		cfg:    cfg,
		deps:   deps,
		themes: newThemeSelector(cfg.Theme),
	}
	if svc.deps.Logger == nil {
		svc.deps.Logger = logging.NoOp()
	}
	if svc.deps.Notifier == nil {
		svc.deps.Notifier = activity.NoOp()
	}
	if svc.deps.Renderer == nil {
		var opts []RendererOption
		if themeFS := svc.themes.FS(); themeFS != nil {
			opts = append(opts, WithTemplateFS(themeFS))
		}
		svc.deps.Renderer = NewHTMLRenderer(opts...)
	}
	return svc
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	deps   Dependencies
	themes *themeSelector
}

type disabledService struct{}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if s.deps.Posts == nil {
		return nil, errors.New("generator: post source is required")
	}
	start := time.Now()

	posts, err := s.deps.Posts.List(ctx, internalposts.ListOptions{
		IncludeDrafts: opts.IncludeDrafts || s.cfg.IncludeDrafts,
		IncludeFuture: opts.IncludeFuture || s.cfg.IncludeFuture,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: list posts: %w", err)
	}

	site := SiteContext{
		Title:       s.cfg.Title,
		Description: s.cfg.Description,
		Author:      s.cfg.Author,
		Language:    s.cfg.Language,
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
	}
	byPath := make(map[string]*blogposts.Post, len(posts))
	urls := make(map[string]string, len(posts))
	for _, post := range posts {
		byPath[post.Path] = post
		urls[post.Slug] = s.routeFor(post.Slug)
	}

	result := &BuildResult{DryRun: opts.DryRun}
	entries := s.curatedEntries(ctx, posts, byPath, urls, result)

	writer := newArtifactWriter(s.deps.Storage)
	if !opts.DryRun && s.cfg.CleanBuild {
		if err := writer.RemoveAll(ctx, "."); err != nil {
			return nil, fmt.Errorf("generator: clean output: %w", err)
		}
	}

	manifest := newBuildManifest()
	dirCache := map[string]struct{}{}
	write := func(req writeFileRequest) error {
		req.Checksum = computeHash(req.Data)
		manifest.set(req.Path, req.Checksum)
		result.Artifacts = append(result.Artifacts, Artifact{
			Path:        req.Path,
			Checksum:    req.Checksum,
			ContentType: req.ContentType,
			Size:        int64(len(req.Data)),
		})
		if opts.DryRun {
			return nil
		}
		if err := ensureDir(ctx, writer, dirCache, path.Dir(req.Path)); err != nil {
			return err
		}
		return writer.WriteFile(ctx, req)
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, newPostView(post, urls[post.Slug]))
	}

	indexHTML, err := s.deps.Renderer.RenderTemplate(s.themes.TemplateName("index"), IndexContext{
		Site:    site,
		Entries: entries,
		Posts:   views,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: render index page: %w", err)
	}
	if err := write(writeFileRequest{
		Path:        indexOutputFile,
		Data:        []byte(indexHTML),
		Category:    categoryPage,
		ContentType: "text/html; charset=utf-8",
	}); err != nil {
		return nil, err
	}
	result.PagesBuilt++

	postTemplate := s.themes.TemplateName("post")
	for _, view := range views {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		pageHTML, err := s.deps.Renderer.RenderTemplate(postTemplate, PostContext{Site: site, Post: view})
		if err != nil {
			return nil, fmt.Errorf("generator: render post %s: %w", view.Slug, err)
		}
		if err := write(writeFileRequest{
			Path:        postOutputPath(view.Slug),
			Data:        []byte(pageHTML),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
		}); err != nil {
			return nil, err
		}
		result.PagesBuilt++
	}

	published := publishedOnly(posts)
	if s.cfg.GenerateFeeds {
		items := s.buildFeedItems(published, urls)
		if err := write(writeFileRequest{
			Path:        "feed.xml",
			Data:        []byte(buildRSSFeed(site, items)),
			Category:    categoryFeed,
			ContentType: "application/rss+xml",
		}); err != nil {
			return nil, err
		}
		result.FeedsBuilt++
		if err := write(writeFileRequest{
			Path:        "atom.xml",
			Data:        []byte(buildAtomFeed(site, items)),
			Category:    categoryFeed,
			ContentType: "application/atom+xml",
		}); err != nil {
			return nil, err
		}
		result.FeedsBuilt++
	}

	if s.cfg.GenerateSitemap {
		sitemapEntries := make([]sitemapEntry, 0, len(published)+1)
		sitemapEntries = append(sitemapEntries, sitemapEntry{Location: "/"})
		for _, post := range published {
			sitemapEntries = append(sitemapEntries, sitemapEntry{
				Location: urls[post.Slug],
				LastMod:  post.PublishedAt,
			})
		}
		if err := write(writeFileRequest{
			Path:        "sitemap.xml",
			Data:        []byte(buildSitemap(site.BaseURL, sitemapEntries)),
			Category:    categorySitemap,
			ContentType: "application/xml",
		}); err != nil {
			return nil, err
		}
	}

	if s.cfg.GenerateRobots {
		if err := write(writeFileRequest{
			Path:        "robots.txt",
			Data:        []byte(buildRobots(site.BaseURL, s.cfg.GenerateSitemap)),
			Category:    categoryRobots,
			ContentType: "text/plain; charset=utf-8",
		}); err != nil {
			return nil, err
		}
	}

	if s.cfg.CopyAssets {
		copied, err := s.copyAssets(ctx, write)
		if err != nil {
			return nil, err
		}
		result.AssetsBuilt = copied
	}

	manifestData, err := manifest.marshal()
	if err != nil {
		return nil, fmt.Errorf("generator: marshal manifest: %w", err)
	}
	if err := write(writeFileRequest{
		Path:        manifestFileName,
		Data:        manifestData,
		Category:    categoryManifest,
		ContentType: "application/json",
	}); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	s.deps.Logger.Info("site build finished",
		"pages", result.PagesBuilt,
		"assets", result.AssetsBuilt,
		"broken_refs", len(result.BrokenRefs),
		"dry_run", opts.DryRun,
	)
	s.notify(ctx, result)
	return result, nil
}

// Clean removes everything below the output root.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	writer := newArtifactWriter(s.deps.Storage)
	return writer.RemoveAll(ctx, ".")
}

// curatedEntries resolves the index document ordering against stored posts.
// Missing posts are recorded as broken references and skipped; the build
// continues. Without an index the newest-first post order is used.
func (s *service) curatedEntries(
	ctx context.Context,
	posts []*blogposts.Post,
	byPath map[string]*blogposts.Post,
	urls map[string]string,
	result *BuildResult,
) []IndexEntryView {
	if s.deps.Index == nil {
		return entriesFromPosts(posts, urls)
	}
	refs, err := s.deps.Index.List(ctx, internalindex.ListInput{})
	if err != nil {
		if errors.Is(err, blogindexes.ErrIndexNotFound) {
			return entriesFromPosts(posts, urls)
		}
		s.deps.Logger.Warn("index listing failed, falling back to post order", "error", err)
		return entriesFromPosts(posts, urls)
	}

	entries := make([]IndexEntryView, 0, len(refs))
	for _, ref := range refs {
		post, ok := byPath[ref.Path]
		if !ok {
			result.BrokenRefs = append(result.BrokenRefs, ref.Path)
			s.deps.Logger.Warn("index references missing post", "path", ref.Path, "title", ref.Title)
			continue
		}
		title := strings.TrimSpace(ref.Title)
		if title == "" {
			title = post.Title
		}
		entries = append(entries, IndexEntryView{
			Title: title,
			URL:   urls[post.Slug],
			Path:  post.Path,
		})
	}
	return entries
}

func entriesFromPosts(posts []*blogposts.Post, urls map[string]string) []IndexEntryView {
	entries := make([]IndexEntryView, 0, len(posts))
	for _, post := range posts {
		entries = append(entries, IndexEntryView{
			Title: post.Title,
			URL:   urls[post.Slug],
			Path:  post.Path,
		})
	}
	return entries
}

// routeFor prefers the urlkit resolver and falls back to the conventional
// posts/<slug>/ layout.
func (s *service) routeFor(slug string) string {
	if s.deps.URLs != nil {
		if resolved, err := s.deps.URLs.Resolve(slug); err == nil && strings.TrimSpace(resolved) != "" {
			return resolved
		}
	}
	return postRoute(slug)
}

func (s *service) copyAssets(ctx context.Context, write func(writeFileRequest) error) (int, error) {
	selection, err := s.themes.Selection()
	if err != nil {
		return 0, err
	}
	if selection == nil {
		return 0, nil
	}
	themeFS := s.themes.FS()
	if themeFS == nil {
		return 0, nil
	}

	copied := 0
	for _, asset := range collectThemeAssets(selection) {
		select {
		case <-ctx.Done():
			return copied, ctx.Err()
		default:
		}
		data, err := fs.ReadFile(themeFS, asset)
		if err != nil {
			return copied, fmt.Errorf("generator: read theme asset %s: %w", asset, err)
		}
		if err := write(writeFileRequest{
			Path:        path.Join("assets", asset),
			Data:        data,
			Category:    categoryAsset,
			ContentType: detectAssetContentType(asset),
		}); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func (s *service) notify(ctx context.Context, result *BuildResult) {
	err := s.deps.Notifier.Notify(ctx, activity.Event{
		Verb:           activity.VerbBuild,
		ObjectType:     activity.ObjectTypeSite,
		Channel:        activity.ChannelBlog,
		DefinitionCode: "site:build",
		Metadata: map[string]any{
			"pages":       result.PagesBuilt,
			"assets":      result.AssetsBuilt,
			"broken_refs": len(result.BrokenRefs),
			"dry_run":     result.DryRun,
		},
	})
	if err != nil {
		s.deps.Logger.Warn("build activity notification failed", "error", err)
	}
}

func publishedOnly(posts []*blogposts.Post) []*blogposts.Post {
	out := make([]*blogposts.Post, 0, len(posts))
	for _, post := range posts {
		if post == nil || post.Status != domain.StatusPublished {
			continue
		}
		out = append(out, post)
	}
	return out
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
