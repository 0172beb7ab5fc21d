package markdowncmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the command handlers produced by RegisterImportCommands.
type HandlerSet struct {
	Import *ImportPostsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportPostsCommand]
}

// WithImportHandlerOptions forwards options to the ImportPostsHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportPostsCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// RegisterImportCommands builds the post import handler and registers it with
// the provided registry. The HandlerSet is returned so callers can wire
// additional integrations (dispatcher, cron) as needed.
func RegisterImportCommands(reg CommandRegistry, importer DirectoryImporter, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if importer == nil {
		return nil, errors.New("markdown command registration: importer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "posts")

	importHandler := NewImportPostsHandler(importer, logger, gates, cfg.importHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(importHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Import: importHandler,
	}, nil
}

// RegisterImportCron wires the provided import handler into a cron registrar
// using the supplied command configuration and message payload. The handler is
// executed with a background context.
func RegisterImportCron(reg CronRegistrar, handler *ImportPostsHandler, cfg command.HandlerConfig, msg ImportPostsCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
