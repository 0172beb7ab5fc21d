package markdownadapter

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/internal/markdown"
	command "github.com/goliatone/go-command"
)

type importCall struct {
	directory string
	options   markdown.ImportOptions
}

type stubImporter struct {
	calls  []importCall
	result *markdown.ImportResult
	err    error
}

func (s *stubImporter) ImportDirectory(ctx context.Context, dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error) {
	s.calls = append(s.calls, importCall{directory: dir, options: opts})
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &markdown.ImportResult{}, nil
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
}

func (r *recordingCron) register(cfg command.HandlerConfig, handler any) error {
	var fn func() error
	if h, ok := handler.(func() error); ok {
		fn = h
	}
	r.registrations = append(r.registrations, cronRegistration{config: cfg, handler: fn})
	return nil
}

func TestRegisterImportCommandsRegistersHandler(t *testing.T) {
	reg := &recordingRegistry{}
	importer := &stubImporter{}

	set, err := RegisterImportCommands(reg, importer, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register import commands: %v", err)
	}
	if set == nil || set.Import == nil {
		t.Fatalf("expected import handler, got %#v", set)
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected one handler registered, got %d", len(reg.handlers))
	}
	if reg.handlers[0] != set.Import {
		t.Fatalf("expected import handler registered, got %#v", reg.handlers[0])
	}
}

func TestRegisterImportCommandsNilRegistrySkipsRegistration(t *testing.T) {
	set, err := RegisterImportCommands(nil, &stubImporter{}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register import commands: %v", err)
	}
	if set == nil || set.Import == nil {
		t.Fatalf("expected handler built when registry nil, got %#v", set)
	}
}

func TestRegisterImportCommandsNilImporterError(t *testing.T) {
	if _, err := RegisterImportCommands(nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when importer nil")
	}
}

func TestRegisterImportCronRegistersHandler(t *testing.T) {
	importer := &stubImporter{}
	set, err := RegisterImportCommands(nil, importer, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register import commands: %v", err)
	}

	recorder := &recordingCron{}
	cfg := command.HandlerConfig{Expression: "@daily"}
	msg := ImportPostsCommand{Directory: "content/_posts"}

	if err := RegisterImportCron(recorder.register, set.Import, cfg, msg); err != nil {
		t.Fatalf("register import cron: %v", err)
	}
	if len(recorder.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.registrations))
	}
	reg := recorder.registrations[0]
	if reg.config.Expression != "@daily" {
		t.Fatalf("unexpected cron expression %q", reg.config.Expression)
	}
	if reg.handler == nil {
		t.Fatal("expected cron handler function recorded")
	}
	if err := reg.handler(); err != nil {
		t.Fatalf("executing cron handler: %v", err)
	}
	if len(importer.calls) != 1 || importer.calls[0].directory != "content/_posts" {
		t.Fatalf("expected import pass for content/_posts, got %+v", importer.calls)
	}
}

func TestRegisterImportCronNoOpWhenRegistrarNil(t *testing.T) {
	importer := &stubImporter{}
	set, err := RegisterImportCommands(nil, importer, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register import commands: %v", err)
	}
	if err := RegisterImportCron(nil, set.Import, command.HandlerConfig{}, ImportPostsCommand{Directory: "content"}); err != nil {
		t.Fatalf("expected nil error when registrar nil, got %v", err)
	}
	if len(importer.calls) != 0 {
		t.Fatalf("expected no import calls, got %d", len(importer.calls))
	}
}
