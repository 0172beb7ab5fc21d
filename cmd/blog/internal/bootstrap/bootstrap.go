// Package bootstrap assembles the blog module for the CLI binaries: it opens
// the configured database, applies the embedded SQL migrations, and wires a
// go-logger backed provider.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const migrationsDir = "data/sql/migrations"

// Options captures the configuration shared by the CLI commands.
type Options struct {
	PostsDir  string
	IndexPath string
	Pattern   string
	Recursive bool

	OutputDir string
	BaseURL   string
	Generator bool

	// Driver selects the database dialect (sqlite3 or postgres). An empty
	// DSN keeps the in-memory repositories.
	Driver string
	DSN    string

	LogLevel  string
	LogFormat string
}

// Resources groups the module runtime and the database handle the CLI owns.
type Resources struct {
	Module *blog.Module
	DB     *bun.DB
}

// Close releases the database handle when one was opened.
func (r *Resources) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// BuildModule constructs a blog.Module from CLI options. When a DSN is
// provided the database is opened, migrated, and wired into the container.
func BuildModule(opts Options) (*Resources, error) {
	cfg := blog.DefaultConfig()

	if trimmed := strings.TrimSpace(opts.PostsDir); trimmed != "" {
		cfg.Content.PostsDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.IndexPath); trimmed != "" {
		cfg.Content.IndexPath = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	if opts.Generator {
		cfg.Generator.Enabled = true
		if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
			cfg.Generator.OutputDir = trimmed
		}
		if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
			cfg.Site.BaseURL = trimmed
			// Feeds and sitemap need absolute URLs; enable them only when a
			// base URL is available.
			cfg.Features.Feeds = true
			cfg.Features.Sitemap = true
		}
	}

	cfg.Logging.Provider = "gologger"
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Logging.Level,
		Format: logFormat(cfg.Logging.Format),
	})
	if err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}

	diOpts := []di.Option{di.WithLoggerProvider(provider)}

	var db *bun.DB
	if strings.TrimSpace(opts.DSN) != "" {
		db, err = OpenDatabase(opts.Driver, opts.DSN)
		if err != nil {
			return nil, err
		}
		if err := ApplyMigrations(context.Background(), db); err != nil {
			db.Close()
			return nil, err
		}
		cfg.Storage.Driver = normalizeDriver(opts.Driver)
		cfg.Storage.DSN = strings.TrimSpace(opts.DSN)
		diOpts = append(diOpts, di.WithBunDB(db))
	}

	module, err := blog.New(cfg, diOpts...)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	return &Resources{Module: module, DB: db}, nil
}

// OpenDatabase opens a bun.DB for the given driver and DSN.
func OpenDatabase(driver, dsn string) (*bun.DB, error) {
	switch normalizeDriver(driver) {
	case "sqlite3":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		// SQLite rejects concurrent writers; a single connection keeps the
		// pool from splitting in-memory databases across connections.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ApplyMigrations runs the embedded SQL migrations in lexical order.
func ApplyMigrations(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("apply migrations: database is nil")
	}

	migrations := blog.GetMigrationsFS()
	names, err := fs.Glob(migrations, migrationsDir+"/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		payload, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(payload)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func normalizeDriver(driver string) string {
	normalized := strings.ToLower(strings.TrimSpace(driver))
	if normalized == "" {
		return "sqlite3"
	}
	return normalized
}

func logFormat(format string) string {
	if strings.TrimSpace(format) == "" {
		return "console"
	}
	return format
}
