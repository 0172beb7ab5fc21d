package markdowncmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const importOperation = "posts.import"

// ErrImportFeatureDisabled is returned when the import feature flag is disabled at runtime.
var ErrImportFeatureDisabled = errors.New("markdown command: import disabled")

var _ command.Commander[ImportPostsCommand] = (*ImportPostsHandler)(nil)

// DirectoryImporter is the slice of the markdown importer the command layer drives.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context, dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error)
}

// ImportPostsHandler orchestrates post imports via the shared command handler foundation.
type ImportPostsHandler struct {
	inner *commands.Handler[ImportPostsCommand]
}

// NewImportPostsHandler creates a handler bound to the supplied importer.
func NewImportPostsHandler(importer DirectoryImporter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportPostsCommand]) *ImportPostsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportPostsCommand) error {
		if !gates.importEnabled() {
			return ErrImportFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		importOpts := markdown.ImportOptions{
			Force:     msg.Force,
			DryRun:    msg.DryRun,
			SyncIndex: msg.SyncIndex,
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		}

		result, err := importer.ImportDirectory(ctx, msg.Directory, importOpts)
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"imported_count": len(result.Imported),
				"replaced_count": len(result.Replaced),
				"skipped_count":  len(result.Skipped),
				"conflict_count": len(result.Conflicts),
				"failed_count":   len(result.Failed),
				"dry_run":        msg.DryRun,
			}).Info("posts.command.import.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportPostsCommand]{
		commands.WithLogger[ImportPostsCommand](baseLogger),
		commands.WithOperation[ImportPostsCommand](importOperation),
		commands.WithMessageFields(func(msg ImportPostsCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			if msg.Force {
				fields["force"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.SyncIndex {
				fields["sync_index"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportPostsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportPostsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportPostsCommand].
func (h *ImportPostsHandler) Execute(ctx context.Context, msg ImportPostsCommand) error {
	return h.inner.Execute(ctx, msg)
}
