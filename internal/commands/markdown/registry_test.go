package markdowncmd

import (
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/commands/fixtures"
	"github.com/goliatone/go-blog/internal/markdown"
	command "github.com/goliatone/go-command"
)

func TestRegisterImportCommandsRegistersHandler(t *testing.T) {
	registry := fixtures.NewRecordingRegistry()
	importer := &stubImporter{result: &markdown.ImportResult{}}

	set, err := RegisterImportCommands(registry, importer, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register import commands: %v", err)
	}
	if set == nil || set.Import == nil {
		t.Fatal("expected handler set with import handler")
	}
	if len(registry.Handlers) != 1 {
		t.Fatalf("expected 1 registered handler, got %d", len(registry.Handlers))
	}
	if registry.Handlers[0] != set.Import {
		t.Fatal("expected registered handler to match the returned set")
	}
}

func TestRegisterImportCommandsRequiresImporter(t *testing.T) {
	if _, err := RegisterImportCommands(nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil importer")
	}
}

func TestRegisterImportCommandsPropagatesRegistryError(t *testing.T) {
	registry := fixtures.NewRecordingRegistry()
	registry.Err = errors.New("registry full")

	_, err := RegisterImportCommands(registry, &stubImporter{}, nil, FeatureGates{})
	if !errors.Is(err, registry.Err) {
		t.Fatalf("expected registry error, got %v", err)
	}
}

func TestRegisterImportCronWiresHandler(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	importer := &stubImporter{result: &markdown.ImportResult{}}
	handler := NewImportPostsHandler(importer, nil, FeatureGates{})

	cfg := command.HandlerConfig{Expression: "0 3 * * *"}
	msg := ImportPostsCommand{Directory: "_posts", SyncIndex: true}

	if err := RegisterImportCron(recorder.Registrar(), handler, cfg, msg); err != nil {
		t.Fatalf("register cron: %v", err)
	}
	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected 1 cron registration, got %d", len(recorder.Registrations))
	}

	run, ok := recorder.Registrations[0].Handler.(func() error)
	if !ok {
		t.Fatalf("expected func() error cron payload, got %T", recorder.Registrations[0].Handler)
	}
	if err := run(); err != nil {
		t.Fatalf("cron execution: %v", err)
	}
	if len(importer.calls) != 1 {
		t.Fatalf("expected cron run to invoke importer, got %d calls", len(importer.calls))
	}
	if !importer.calls[0].options.SyncIndex {
		t.Fatal("expected cron payload to carry sync index option")
	}
}

func TestRegisterImportCronNilRegistrar(t *testing.T) {
	if err := RegisterImportCron(nil, nil, command.HandlerConfig{}, ImportPostsCommand{}); err != nil {
		t.Fatalf("expected nil error for nil registrar, got %v", err)
	}
}
