// Package di wires the blog module's services from runtime configuration.
package di

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/adapters/storage"
	"github.com/goliatone/go-blog/internal/generator"
	internalindex "github.com/goliatone/go-blog/internal/index"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/migrations"
	internalposts "github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/activity"
	"github.com/goliatone/go-blog/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Defaults are in-memory; WithBunDB
// switches repositories to bun-backed (optionally cached) implementations.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	storage        interfaces.StorageProvider
	template       interfaces.TemplateRenderer
	notifier       activity.Notifier
	loggerProvider interfaces.LoggerProvider

	postRepo  internalposts.PostRepository
	indexRepo internalindex.IndexRepository

	routeManager *urlkit.RouteManager
	urlResolver  *internalindex.EntryURLResolver

	postSvc      *internalposts.Service
	indexSvc     *internalindex.Service
	generatorSvc generator.Service
	validator    *validation.FrontMatterValidator
	migrator     *migrations.PostMigrator

	markdownOnce sync.Once
	markdownSvc  *markdown.Service
	markdownErr  error

	importerOnce sync.Once
	importer     *markdown.Importer
	importerErr  error

	clock func() time.Time
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithStorage overrides the storage provider the generator writes through.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		c.storage = sp
	}
}

// WithTemplate overrides the generator's template renderer.
func WithTemplate(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = tr
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB switches repositories to bun-backed implementations.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActivityNotifier overrides the activity notifier (default no-op).
// Features.Activity must be enabled for the notifier to receive events.
func WithActivityNotifier(notifier activity.Notifier) Option {
	return func(c *Container) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithPostRepository overrides the post repository binding.
func WithPostRepository(repo internalposts.PostRepository) Option {
	return func(c *Container) {
		if repo != nil {
			c.postRepo = repo
		}
	}
}

// WithIndexRepository overrides the index repository binding.
func WithIndexRepository(repo internalindex.IndexRepository) Option {
	return func(c *Container) {
		if repo != nil {
			c.indexRepo = repo
		}
	}
}

// WithPostService overrides the post service binding.
func WithPostService(svc *internalposts.Service) Option {
	return func(c *Container) {
		c.postSvc = svc
	}
}

// WithIndexService overrides the index service binding.
func WithIndexService(svc *internalindex.Service) Option {
	return func(c *Container) {
		c.indexSvc = svc
	}
}

// WithMarkdownService overrides the lazily constructed markdown service.
func WithMarkdownService(svc *markdown.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.markdownSvc = svc
			c.markdownOnce.Do(func() {})
		}
	}
}

// WithGeneratorService overrides the generator service binding.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// WithClock overrides the time source shared by the wired services.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.clock = now
		}
	}
}

// NewContainer creates a container from the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:    cfg,
		cacheTTL:  cacheTTL,
		notifier:  activity.NoOp(),
		postRepo:  internalposts.NewMemoryPostRepository(),
		indexRepo: internalindex.NewMemoryIndexRepository(),
		validator: validation.NewFrontMatterValidator(),
		migrator:  migrations.NewPostMigrator(),
		clock:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if !cfg.Features.Activity {
		c.notifier = activity.NoOp()
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRoutes()
	c.configureServices()
	c.configureGenerator()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := consoleLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: &level,
		})
	}
	return nil
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.Cache || !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.postRepo = internalposts.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.indexRepo = internalindex.NewBunIndexRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureRoutes() {
	if c.urlResolver != nil {
		return
	}

	routes := c.Config.Routes
	if routes.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(routes.RouteConfig)
	c.routeManager = manager
	c.urlResolver = internalindex.NewEntryURLResolver(internalindex.EntryURLResolverOptions{
		Manager:      manager,
		DefaultGroup: strings.TrimSpace(routes.URLKit.DefaultGroup),
		DefaultRoute: strings.TrimSpace(routes.URLKit.DefaultRoute),
		SlugParam:    strings.TrimSpace(routes.URLKit.SlugParam),
	})
}

func (c *Container) configureServices() {
	if c.postSvc == nil {
		c.postSvc = internalposts.NewService(c.postRepo,
			internalposts.WithLogger(logging.PostsLogger(c.loggerProvider)),
			internalposts.WithPathPrefix(c.Config.Content.PostsPathPrefix),
			internalposts.WithClock(c.clock),
		)
	}

	if c.indexSvc == nil {
		indexOpts := []internalindex.ServiceOption{
			internalindex.WithLogger(logging.IndexLogger(c.loggerProvider)),
			internalindex.WithNotifier(c.notifier),
			internalindex.WithStrict(c.Config.Features.StrictIndex),
			internalindex.WithDefaultCode(c.Config.Content.IndexCode),
			internalindex.WithPathPrefix(c.Config.Content.PostsPathPrefix),
			internalindex.WithClock(c.clock),
		}
		if c.urlResolver != nil {
			indexOpts = append(indexOpts, internalindex.WithURLResolver(c.urlResolver))
		}
		c.indexSvc = internalindex.NewService(c.indexRepo, c.postSvc, indexOpts...)
	}
}

func (c *Container) configureGenerator() {
	if c.generatorSvc != nil {
		return
	}
	if !c.Config.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
		return
	}

	if c.storage == nil {
		provider, err := storage.NewFilesystemProvider(c.Config.Generator.OutputDir)
		if err != nil {
			logging.GeneratorLogger(c.loggerProvider).Error("generator storage unavailable",
				"error", err,
				"output_dir", c.Config.Generator.OutputDir,
			)
			c.generatorSvc = generator.NewDisabledService()
			return
		}
		c.storage = provider
	}

	cfg := generator.Config{
		BaseURL:         c.Config.Site.BaseURL,
		Title:           c.Config.Site.Title,
		Description:     c.Config.Site.Description,
		Author:          c.Config.Site.Author,
		Language:        c.Config.Site.Language,
		CleanBuild:      c.Config.Generator.CleanBuild,
		CopyAssets:      c.Config.Generator.CopyAssets,
		GenerateSitemap: c.Config.Generator.GenerateSitemap && c.Config.Features.Sitemap,
		GenerateRobots:  c.Config.Generator.GenerateRobots,
		GenerateFeeds:   c.Config.Generator.GenerateFeeds && c.Config.Features.Feeds,
		FeedLimit:       c.Config.Generator.FeedLimit,
		IncludeDrafts:   c.Config.Generator.IncludeDrafts,
		IncludeFuture:   c.Config.Generator.IncludeFuture,
	}
	if c.Config.Features.Themes {
		cfg.Theme = generator.ThemeConfig{
			Dir:     c.Config.Themes.BasePath,
			Name:    c.Config.Themes.DefaultTheme,
			Variant: c.Config.Themes.DefaultVariant,
		}
	}

	c.generatorSvc = generator.NewService(cfg, generator.Dependencies{
		Posts:    c.postSvc,
		Index:    c.indexSvc,
		Renderer: c.template,
		Storage:  c.storage,
		URLs:     c.urlResolver,
		Notifier: c.notifier,
		Logger:   logging.GeneratorLogger(c.loggerProvider),
	})
}

// MarkdownService lazily constructs the filesystem-backed markdown service.
// The posts directory must exist; the error is memoized.
func (c *Container) MarkdownService() (*markdown.Service, error) {
	c.markdownOnce.Do(func() {
		c.markdownSvc, c.markdownErr = markdown.NewService(markdown.Config{
			BasePath:  c.Config.Content.PostsDir,
			Pattern:   c.Config.Markdown.Pattern,
			Recursive: c.Config.Markdown.Recursive,
			Parser: interfaces.ParseOptions{
				Extensions: c.Config.Markdown.Parser.Extensions,
				Sanitize:   c.Config.Markdown.Parser.Sanitize,
				HardWraps:  c.Config.Markdown.Parser.HardWraps,
				SafeMode:   c.Config.Markdown.Parser.SafeMode,
			},
		}, nil)
	})
	return c.markdownSvc, c.markdownErr
}

// Importer lazily constructs the post importer over the markdown service,
// wiring validation, payload migration, and the index re-sync callback.
func (c *Container) Importer() (*markdown.Importer, error) {
	c.importerOnce.Do(func() {
		service, err := c.MarkdownService()
		if err != nil {
			c.importerErr = err
			return
		}
		c.importer = markdown.NewImporter(markdown.ImporterConfig{
			Store:     c.postSvc,
			Markdown:  service,
			Validator: c.validator,
			Migrator:  c.migrator,
			Notifier:  c.notifier,
			Logger:    logging.MarkdownLogger(c.loggerProvider),
			SyncIndex: c.syncIndexFromDocument,
			Clock:     c.clock,
		})
	})
	return c.importer, c.importerErr
}

// syncIndexFromDocument reads the configured index document and re-syncs the
// curated index. Used as the importer's post-pass callback.
func (c *Container) syncIndexFromDocument(ctx context.Context) error {
	source, err := os.ReadFile(c.Config.Content.IndexPath)
	if err != nil {
		return err
	}
	_, err = c.indexSvc.Sync(ctx, internalindex.SyncInput{
		Code:   c.Config.Content.IndexCode,
		Path:   c.Config.Content.IndexPath,
		Source: source,
	})
	return err
}

// PostService returns the configured post service.
func (c *Container) PostService() *internalposts.Service {
	return c.postSvc
}

// IndexService returns the configured index service.
func (c *Container) IndexService() *internalindex.Service {
	return c.indexSvc
}

// GeneratorService returns the configured generator service.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// StorageProvider exposes the configured storage implementation, if any.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// TemplateRenderer exposes the configured template renderer, if any.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

// LoggerProvider exposes the configured logger provider, if any.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ActivityNotifier exposes the configured activity notifier.
func (c *Container) ActivityNotifier() activity.Notifier {
	return c.notifier
}

// RouteManager exposes the urlkit route manager, if routes are configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// EntryURLResolver exposes the urlkit entry resolver, if routes are configured.
func (c *Container) EntryURLResolver() *internalindex.EntryURLResolver {
	return c.urlResolver
}

// FrontMatterValidator exposes the shared front-matter validator.
func (c *Container) FrontMatterValidator() *validation.FrontMatterValidator {
	return c.validator
}

// PostMigrator exposes the versioned payload migrator.
func (c *Container) PostMigrator() *migrations.PostMigrator {
	return c.migrator
}

// BunDB exposes the configured database handle, if any.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}
