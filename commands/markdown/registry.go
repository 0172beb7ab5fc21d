// Package markdownadapter re-exports the post import command wiring for
// consumers outside the module boundary.
package markdownadapter

import (
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry = markdowncmd.CommandRegistry

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar = markdowncmd.CronRegistrar

// DirectoryImporter is the importer contract the handlers bind to.
type DirectoryImporter = markdowncmd.DirectoryImporter

// FeatureGates toggles command availability.
type FeatureGates = markdowncmd.FeatureGates

// ImportPostsCommand is the import message payload.
type ImportPostsCommand = markdowncmd.ImportPostsCommand

// ImportPostsHandler executes import messages against the importer.
type ImportPostsHandler = markdowncmd.ImportPostsHandler

// HandlerSet groups the handlers produced by RegisterImportCommands.
type HandlerSet = markdowncmd.HandlerSet

// Option customises handler wiring during registration.
type Option = markdowncmd.Option

// RegisterImportCommands builds the post import handler and registers it with
// the provided registry. The HandlerSet is returned so callers can wire
// additional integrations (dispatcher, cron) as needed.
func RegisterImportCommands(reg CommandRegistry, importer DirectoryImporter, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	return markdowncmd.RegisterImportCommands(reg, importer, provider, gates, opts...)
}

// RegisterImportCron wires the provided import handler into a cron registrar
// using the supplied command configuration and message payload.
func RegisterImportCron(reg CronRegistrar, handler *ImportPostsHandler, cfg command.HandlerConfig, msg ImportPostsCommand) error {
	return markdowncmd.RegisterImportCron(reg, handler, cfg, msg)
}
