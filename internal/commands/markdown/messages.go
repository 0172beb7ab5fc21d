package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importPostsMessageType = "blog.posts.import"

// ImportPostsCommand triggers a filesystem walk for Markdown post documents
// under the provided Directory. The command mirrors markdown.Importer
// ImportDirectory semantics, so options map directly onto
// markdown.ImportOptions.
type ImportPostsCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load post files from.
	Directory string `json:"directory"`
	// Pattern narrows the walk to files matching the glob (e.g. "*.md").
	Pattern string `json:"pattern,omitempty"`
	// Recursive toggles descending into subdirectories; nil keeps the loader default.
	Recursive *bool `json:"recursive,omitempty"`
	// Force replaces stored posts whose checksum drifted from the document.
	Force bool `json:"force,omitempty"`
	// DryRun toggles preview mode to collect the import report without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// SyncIndex re-syncs the curated index document after the pass completes.
	SyncIndex bool `json:"sync_index,omitempty"`
}

// Type implements command.Message.
func (ImportPostsCommand) Type() string { return importPostsMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportPostsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.posts.import.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
