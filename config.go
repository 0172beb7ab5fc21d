package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteBaseURLRequired        = runtimeconfig.ErrSiteBaseURLRequired
	ErrContentPostsDirRequired    = runtimeconfig.ErrContentPostsDirRequired
	ErrContentIndexPathRequired   = runtimeconfig.ErrContentIndexPathRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrThemesFeatureRequired      = runtimeconfig.ErrThemesFeatureRequired
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrFeedLimitInvalid           = runtimeconfig.ErrFeedLimitInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	SiteConfig           = runtimeconfig.SiteConfig
	ContentConfig        = runtimeconfig.ContentConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	ThemeConfig          = runtimeconfig.ThemeConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	RoutesConfig         = runtimeconfig.RoutesConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	Features             = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
