package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrSiteBaseURLRequired indicates feed/sitemap generation without a base URL.
var ErrSiteBaseURLRequired = errors.New("blog config: site base URL is required when feeds or sitemap are enabled")

// ErrContentPostsDirRequired indicates markdown ingestion without a posts directory.
var ErrContentPostsDirRequired = errors.New("blog config: content posts directory is required")

// ErrContentIndexPathRequired indicates index syncing without an index document.
var ErrContentIndexPathRequired = errors.New("blog config: content index path is required")

// ErrGeneratorOutputDirRequired indicates a build without an output directory.
var ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required when generator is enabled")

// ErrThemesFeatureRequired indicates inconsistent theme configuration.
var ErrThemesFeatureRequired = errors.New("blog config: themes feature must be enabled to configure a default theme")

// ErrStorageDriverUnknown indicates an unsupported database driver.
var ErrStorageDriverUnknown = errors.New("blog config: storage driver is invalid")

var ErrFeedLimitInvalid = errors.New("blog config: feed item limit must be zero or positive")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Site      SiteConfig
	Content   ContentConfig
	Markdown  MarkdownConfig
	Generator GeneratorConfig
	Themes    ThemeConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Routes    RoutesConfig
	Logging   LoggingConfig
	Commands  CommandsConfig
	Features  Features
}

// SiteConfig describes the published site for feeds, sitemap, and templates.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// ContentConfig captures where post documents and the index document live.
type ContentConfig struct {
	// PostsDir is the directory holding post files (the Jekyll `_posts` layout).
	PostsDir string
	// PostsPathPrefix is the link prefix index entries must carry, e.g. "/_posts".
	PostsPathPrefix string
	// IndexPath is the index document, relative to the content root.
	IndexPath string
	// IndexCode identifies the curated index record.
	IndexCode string
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown ingestion.
type MarkdownConfig struct {
	Pattern   string
	Recursive bool
	Parser    MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	CleanBuild      bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	FeedLimit       int
	IncludeDrafts   bool
	IncludeFuture   bool
}

// ThemeConfig captures configuration for generator theming.
type ThemeConfig struct {
	BasePath       string
	DefaultTheme   string
	DefaultVariant string
}

// StorageConfig selects the database driver used by the bun repositories.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig captures cache behaviour toggles for the repository layer.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig wires go-urlkit route resolution for entry and feed URLs.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	DefaultGroup string
	DefaultRoute string
	SlugParam    string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
}

// Features toggles module functionality.
type Features struct {
	Cache       bool
	Feeds       bool
	Sitemap     bool
	Themes      bool
	Activity    bool
	StrictIndex bool
	Logger      bool
}

// DefaultConfig returns opinionated defaults matching the Jekyll-style layout.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Site: SiteConfig{
			Title:    "Engineering Blog",
			Language: "en",
		},
		Content: ContentConfig{
			PostsDir:        "_posts",
			PostsPathPrefix: "/_posts",
			IndexPath:       "index.md",
			IndexCode:       "posts",
		},
		Markdown: MarkdownConfig{
			Pattern:   "*.md",
			Recursive: false,
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			CleanBuild:      true,
			CopyAssets:      true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeeds:   true,
			FeedLimit:       100,
		},
		Themes: ThemeConfig{
			BasePath: "themes",
		},
		Storage: StorageConfig{
			Driver: "sqlite3",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Routes: RoutesConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Commands: CommandsConfig{},
		Features: Features{
			Cache:       true,
			StrictIndex: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.PostsDir) == "" {
		return ErrContentPostsDirRequired
	}
	if strings.TrimSpace(cfg.Content.IndexPath) == "" {
		return ErrContentIndexPathRequired
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		if (cfg.Features.Feeds || cfg.Features.Sitemap) && strings.TrimSpace(cfg.Site.BaseURL) == "" {
			return ErrSiteBaseURLRequired
		}
	}
	if cfg.Generator.FeedLimit < 0 {
		return ErrFeedLimitInvalid
	}
	if !cfg.Features.Themes {
		if strings.TrimSpace(cfg.Themes.DefaultTheme) != "" {
			return ErrThemesFeatureRequired
		}
	}
	if driver := normalizeDriver(cfg.Storage.Driver); driver != "" && !isSupportedDriver(driver) {
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeDriver(driver string) string {
	return strings.ToLower(strings.TrimSpace(driver))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite3", "postgres":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
