package indexcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	index "github.com/goliatone/go-blog/internal/index"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	syncOperation = "index.sync"
	listOperation = "index.list"
)

// ErrIndexFeatureDisabled is returned when the index feature flag is disabled at runtime.
var ErrIndexFeatureDisabled = errors.New("index command: feature disabled")

var (
	_ command.Commander[SyncIndexCommand] = (*SyncIndexHandler)(nil)
	_ command.Commander[ListIndexCommand] = (*ListIndexHandler)(nil)
)

// IndexService is the slice of the index service the command layer drives.
type IndexService interface {
	Sync(ctx context.Context, input index.SyncInput) (*index.SyncReport, error)
	List(ctx context.Context, input index.ListInput) ([]index.PostRef, error)
}

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	IndexEnabled func() bool
}

func (g FeatureGates) indexEnabled() bool {
	if g.IndexEnabled == nil {
		return true
	}
	return g.IndexEnabled()
}

// SyncIndexHandler orchestrates index document syncs via the shared command handler foundation.
type SyncIndexHandler struct {
	inner *commands.Handler[SyncIndexCommand]
}

// NewSyncIndexHandler creates a handler bound to the supplied index service.
func NewSyncIndexHandler(service IndexService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncIndexCommand]) *SyncIndexHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncIndexCommand) error {
		if service == nil || !gates.indexEnabled() {
			return ErrIndexFeatureDisabled
		}

		report, err := service.Sync(ctx, index.SyncInput{
			Code:   msg.Code,
			Path:   msg.Path,
			Source: msg.Source,
			Strict: msg.Strict,
		})
		if err != nil {
			return err
		}
		if report != nil {
			logging.WithFields(baseLogger, map[string]any{
				"entries":      report.Entries,
				"broken_count": len(report.BrokenPaths),
			}).Info("index.command.sync.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncIndexCommand]{
		commands.WithLogger[SyncIndexCommand](baseLogger),
		commands.WithOperation[SyncIndexCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncIndexCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.Code != "" {
				fields["code"] = msg.Code
			}
			if msg.Strict != nil {
				fields["strict"] = *msg.Strict
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncIndexCommand].
func (h *SyncIndexHandler) Execute(ctx context.Context, msg SyncIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListIndexHandler reads curated references and hands them to the message callback.
type ListIndexHandler struct {
	inner *commands.Handler[ListIndexCommand]
}

// NewListIndexHandler creates a handler bound to the supplied index service.
func NewListIndexHandler(service IndexService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ListIndexCommand]) *ListIndexHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ListIndexCommand) error {
		if service == nil || !gates.indexEnabled() {
			return ErrIndexFeatureDisabled
		}

		refs, err := service.List(ctx, index.ListInput{Code: msg.Code})
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(refs)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ListIndexCommand]{
		commands.WithLogger[ListIndexCommand](baseLogger),
		commands.WithOperation[ListIndexCommand](listOperation),
		commands.WithMessageFields(func(msg ListIndexCommand) map[string]any {
			fields := map[string]any{}
			if msg.Code != "" {
				fields["code"] = msg.Code
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ListIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ListIndexCommand].
func (h *ListIndexHandler) Execute(ctx context.Context, msg ListIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}
