package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func TestDefaultConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if !cfg.Enabled {
		t.Fatal("expected module enabled by default")
	}
	if cfg.Content.PostsDir != "_posts" {
		t.Fatalf("unexpected posts dir %q", cfg.Content.PostsDir)
	}
	if cfg.Content.PostsPathPrefix != "/_posts" {
		t.Fatalf("unexpected posts path prefix %q", cfg.Content.PostsPathPrefix)
	}
	if cfg.Content.IndexCode != "posts" {
		t.Fatalf("unexpected index code %q", cfg.Content.IndexCode)
	}
	if cfg.Markdown.Pattern != "*.md" {
		t.Fatalf("unexpected markdown pattern %q", cfg.Markdown.Pattern)
	}
	if cfg.Generator.Enabled {
		t.Fatal("expected generator disabled by default")
	}
	if cfg.Storage.Driver != "sqlite3" {
		t.Fatalf("unexpected storage driver %q", cfg.Storage.Driver)
	}
	if !cfg.Features.StrictIndex {
		t.Fatal("expected strict index syncing by default")
	}
	if !cfg.Features.Cache {
		t.Fatal("expected repository caching enabled by default")
	}
	if cfg.Generator.FeedLimit != 100 {
		t.Fatalf("unexpected feed limit %d", cfg.Generator.FeedLimit)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*runtimeconfig.Config)
		wantErr error
	}{
		{
			name:    "missing posts dir",
			mutate:  func(cfg *runtimeconfig.Config) { cfg.Content.PostsDir = "  " },
			wantErr: runtimeconfig.ErrContentPostsDirRequired,
		},
		{
			name:    "missing index path",
			mutate:  func(cfg *runtimeconfig.Config) { cfg.Content.IndexPath = "" },
			wantErr: runtimeconfig.ErrContentIndexPathRequired,
		},
		{
			name: "generator without output dir",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Generator.Enabled = true
				cfg.Generator.OutputDir = " "
			},
			wantErr: runtimeconfig.ErrGeneratorOutputDirRequired,
		},
		{
			name: "feeds without base URL",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Generator.Enabled = true
				cfg.Features.Feeds = true
				cfg.Site.BaseURL = ""
			},
			wantErr: runtimeconfig.ErrSiteBaseURLRequired,
		},
		{
			name: "sitemap without base URL",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Generator.Enabled = true
				cfg.Features.Sitemap = true
				cfg.Site.BaseURL = " "
			},
			wantErr: runtimeconfig.ErrSiteBaseURLRequired,
		},
		{
			name:    "negative feed limit",
			mutate:  func(cfg *runtimeconfig.Config) { cfg.Generator.FeedLimit = -1 },
			wantErr: runtimeconfig.ErrFeedLimitInvalid,
		},
		{
			name: "default theme without themes feature",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Themes.DefaultTheme = "minimal"
			},
			wantErr: runtimeconfig.ErrThemesFeatureRequired,
		},
		{
			name:    "unknown storage driver",
			mutate:  func(cfg *runtimeconfig.Config) { cfg.Storage.Driver = "oracle" },
			wantErr: runtimeconfig.ErrStorageDriverUnknown,
		},
		{
			name: "logger feature without provider",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = ""
			},
			wantErr: runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name: "unknown logging provider",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "syslog"
			},
			wantErr: runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name: "invalid logging level",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Level = "verbose"
			},
			wantErr: runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "invalid gologger format",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "gologger"
				cfg.Logging.Format = "yaml"
			},
			wantErr: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestConfigValidateAcceptsCompleteGeneratorSetup(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = "public"
	cfg.Features.Feeds = true
	cfg.Features.Sitemap = true
	cfg.Site.BaseURL = "https://blog.example.com"
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected config to validate, got %v", err)
	}
}
