// Package bootstrap assembles a blog module configured for post ingestion so
// CLI commands can run imports without repeating the wiring.
package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/commands"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures the tunable configuration shared across import CLI commands.
type Options struct {
	PostsDir       string
	IndexPath      string
	Pattern        string
	Recursive      bool
	LoggerProvider interfaces.LoggerProvider
	EnableCommands bool // collect command handlers for CLI execution when true
}

// Resources groups the module runtime and optional command registry used by CLI commands.
type Resources struct {
	Module    *blog.Module
	Collector *CommandCollector
}

// CommandCollector records handlers registered by the DI container so CLI
// commands can invoke them directly.
type CommandCollector struct {
	handlers []any
}

// RegisterCommand satisfies commands.CommandRegistry.
func (c *CommandCollector) RegisterCommand(handler any) error {
	c.handlers = append(c.handlers, handler)
	return nil
}

// Handlers returns the collected handlers.
func (c *CommandCollector) Handlers() []any {
	if len(c.handlers) == 0 {
		return nil
	}
	out := make([]any, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// BuildModule constructs a blog.Module configured for post ingestion using the supplied options.
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
	cfg.Commands.Enabled = opts.EnableCommands

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	var collector *CommandCollector
	if opts.EnableCommands {
		collector = &CommandCollector{handlers: make([]any, 0)}
		if _, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{
			Registry: collector,
		}); err != nil {
			return nil, fmt.Errorf("register import commands: %w", err)
		}
	}

	return &Resources{
		Module:    module,
		Collector: collector,
	}, nil
}
