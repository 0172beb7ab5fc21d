package staticcmd

import "github.com/goliatone/go-blog/internal/generator"

const (
	buildSiteMessageType = "blog.site.build"
	diffSiteMessageType  = "blog.site.diff"
	cleanSiteMessageType = "blog.site.clean"
)

// ResultCallback receives build results produced by generator operations. The callback is optional
// and is invoked synchronously from the handler when a BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command execution that produced a BuildResult.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a full site build.
type BuildSiteCommand struct {
	// IncludeDrafts renders draft and future-dated posts alongside published ones.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// DryRun computes artifacts and checksums without writing to storage.
	DryRun bool `json:"dry_run,omitempty"`
	// ResultCallback receives the build result when the run completes.
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (BuildSiteCommand) Validate() error { return nil }

// DiffSiteCommand performs a dry-run build to surface differences without writing artifacts.
type DiffSiteCommand struct {
	// IncludeDrafts renders draft and future-dated posts alongside published ones.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// ResultCallback receives the dry-run result when the run completes.
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (DiffSiteCommand) Type() string { return diffSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (DiffSiteCommand) Validate() error { return nil }

// CleanSiteCommand clears generated artifacts from the configured storage backend.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}
