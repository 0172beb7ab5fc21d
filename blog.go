package blog

import (
	"errors"

	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/generator"
	internalindex "github.com/goliatone/go-blog/internal/index"
	"github.com/goliatone/go-blog/internal/markdown"
	internalposts "github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/activity"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// PostService exports the post service used by the blog package.
type PostService = internalposts.Service

// PostListOptions exports the post listing options.
type PostListOptions = internalposts.ListOptions

// IndexService exports the curated index service.
type IndexService = internalindex.Service

// SyncInput exports the index sync input.
type SyncInput = internalindex.SyncInput

// SyncReport exports the index sync report.
type SyncReport = internalindex.SyncReport

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build result.
type BuildResult = generator.BuildResult

// MarkdownService exports the markdown loading and parsing service.
type MarkdownService = markdown.Service

// Importer exports the post document importer.
type Importer = markdown.Importer

// ImportOptions exports the importer options.
type ImportOptions = markdown.ImportOptions

// ImportResult exports the importer pass summary.
type ImportResult = markdown.ImportResult

var errNilModule = errors.New("blog: module is nil")

// Module is the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}

// Posts returns the configured post service.
func (m *Module) Posts() *PostService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.PostService()
}

// Index returns the configured curated index service.
func (m *Module) Index() *IndexService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.IndexService()
}

// Generator returns the configured generator service. A disabled generator
// still satisfies the contract and fails builds with ErrGeneratorDisabled.
func (m *Module) Generator() GeneratorService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.GeneratorService()
}

// Markdown returns the markdown service. The posts directory must exist.
func (m *Module) Markdown() (*MarkdownService, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.MarkdownService()
}

// Importer returns the post document importer. The posts directory must exist.
func (m *Module) Importer() (*Importer, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.Importer()
}

// Activity returns the activity notifier used by the module.
func (m *Module) Activity() activity.Notifier {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ActivityNotifier()
}

// Logger returns the logger provider used by the module.
func (m *Module) Logger() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}

// Commands builds the command handler set exposed by the module.
func (m *Module) Commands() (*di.Commands, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.Commands()
}

// RegisterCommands builds the command handler set and registers every handler
// with the provided registry.
func (m *Module) RegisterCommands(reg di.CommandRegistry) (*di.Commands, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.RegisterCommands(reg)
}

// ErrGeneratorDisabled is returned by generator operations when the static
// site generator is not enabled in configuration.
var ErrGeneratorDisabled = generator.ErrServiceDisabled
