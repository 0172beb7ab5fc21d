// Package commands exposes the blog module's command handler set to hosts:
// registries, dispatchers, and cron schedulers live outside the module, so
// registration happens against narrow contracts.
package commands

import (
	"context"
	"errors"
	"strings"

	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	"github.com/goliatone/go-blog/internal/di"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry      CommandRegistry
	Dispatcher    CommandDispatcher
	CronRegistrar CronRegistrar
	// ImportCron schedules a recurring import-and-sync pass over the posts
	// directory when set to a cron expression.
	ImportCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the provided
// container and optionally registers them with registry/dispatcher/cron
// integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	set, err := container.Commands()
	if err != nil {
		return nil, err
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 6),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	register(set.ImportPosts)
	register(set.SyncIndex)
	register(set.ListIndex)
	register(set.BuildSite)
	register(set.DiffSite)
	register(set.CleanSite)

	if opts.CronRegistrar != nil {
		if expr := strings.TrimSpace(opts.ImportCron); expr != "" {
			handler := set.ImportPosts
			msg := markdowncmd.ImportPostsCommand{
				Directory: container.Config.Content.PostsDir,
				SyncIndex: true,
			}
			if err := opts.CronRegistrar(command.HandlerConfig{Expression: expr}, func() error {
				return handler.Execute(context.Background(), msg)
			}); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}

	return result, errs
}
