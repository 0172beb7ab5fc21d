// Package bootstrap assembles a blog module configured for static site
// generation so CLI commands can run builds without repeating the wiring.
package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/commands"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures the tunable configuration for the static CLI module.
type Options struct {
	PostsDir       string
	IndexPath      string
	OutputDir      string
	BaseURL        string
	Logger         interfaces.LoggerProvider
	Storage        interfaces.StorageProvider
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

// BuildModule initialises a blog.Module configured for generator operations
// and, when requested, collects command handlers for CLI invocation.
func BuildModule(opts Options) (*Resources, error) {
	cfg := blog.DefaultConfig()
	cfg.Generator.Enabled = true
	cfg.Commands.Enabled = opts.EnableCommands

	if trimmed := strings.TrimSpace(opts.PostsDir); trimmed != "" {
		cfg.Content.PostsDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.IndexPath); trimmed != "" {
		cfg.Content.IndexPath = trimmed
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Site.BaseURL = trimmed
	}

	diOpts := []di.Option{}
	if opts.Logger != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.Logger))
	}
	if opts.Storage != nil {
		diOpts = append(diOpts, di.WithStorage(opts.Storage))
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
			return nil, fmt.Errorf("register generator commands: %w", err)
		}
	}

	return &Resources{
		Module:    module,
		Collector: collector,
	}, nil
}
