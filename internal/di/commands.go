package di

import (
	"github.com/goliatone/go-blog/internal/commands"
	indexcmd "github.com/goliatone/go-blog/internal/commands/index"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-blog/internal/commands/static"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// Commands groups the command handlers produced by the container.
type Commands struct {
	ImportPosts *markdowncmd.ImportPostsHandler
	SyncIndex   *indexcmd.SyncIndexHandler
	ListIndex   *indexcmd.ListIndexHandler
	BuildSite   *staticcmd.BuildSiteHandler
	DiffSite    *staticcmd.DiffSiteHandler
	CleanSite   *staticcmd.CleanSiteHandler
}

// Commands builds the command handler set from the wired services. The import
// handler requires the markdown importer, so the posts directory must exist.
func (c *Container) Commands() (*Commands, error) {
	importer, err := c.Importer()
	if err != nil {
		return nil, err
	}

	enabled := c.Config.Commands.Enabled
	generatorOn := c.Config.Generator.Enabled

	set := &Commands{
		ImportPosts: markdowncmd.NewImportPostsHandler(
			importer,
			commands.CommandLogger(c.loggerProvider, "posts"),
			markdowncmd.FeatureGates{ImportEnabled: func() bool { return enabled }},
		),
		SyncIndex: indexcmd.NewSyncIndexHandler(
			c.indexSvc,
			commands.CommandLogger(c.loggerProvider, "index"),
			indexcmd.FeatureGates{IndexEnabled: func() bool { return enabled }},
		),
		ListIndex: indexcmd.NewListIndexHandler(
			c.indexSvc,
			commands.CommandLogger(c.loggerProvider, "index"),
			indexcmd.FeatureGates{IndexEnabled: func() bool { return enabled }},
		),
		BuildSite: staticcmd.NewBuildSiteHandler(
			c.generatorSvc,
			commands.CommandLogger(c.loggerProvider, "site"),
			staticcmd.FeatureGates{GeneratorEnabled: func() bool { return enabled && generatorOn }},
		),
		DiffSite: staticcmd.NewDiffSiteHandler(
			c.generatorSvc,
			commands.CommandLogger(c.loggerProvider, "site"),
			staticcmd.FeatureGates{GeneratorEnabled: func() bool { return enabled && generatorOn }},
		),
		CleanSite: staticcmd.NewCleanSiteHandler(
			c.generatorSvc,
			commands.CommandLogger(c.loggerProvider, "site"),
			staticcmd.FeatureGates{GeneratorEnabled: func() bool { return enabled && generatorOn }},
		),
	}
	return set, nil
}

// RegisterCommands builds the command handler set and registers every handler
// with the provided registry.
func (c *Container) RegisterCommands(reg CommandRegistry) (*Commands, error) {
	set, err := c.Commands()
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return set, nil
	}
	for _, handler := range []any{
		set.ImportPosts,
		set.SyncIndex,
		set.ListIndex,
		set.BuildSite,
		set.DiffSite,
		set.CleanSite,
	} {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return set, nil
}
