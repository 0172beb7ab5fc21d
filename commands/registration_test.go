package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	command "github.com/goliatone/go-command"
)

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingSubscription struct {
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() { s.unsubscribed = true }

type recordingDispatcher struct {
	subscriptions []*recordingSubscription
}

func (d *recordingDispatcher) RegisterCommand(any) (CommandSubscription, error) {
	sub := &recordingSubscription{}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	payload any
}

type recordingCron struct {
	registrations []cronRegistration
}

func (c *recordingCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, payload any) error {
		c.registrations = append(c.registrations, cronRegistration{config: cfg, payload: payload})
		return nil
	}
}

func testContainer(t *testing.T) *di.Container {
	t.Helper()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.PostsDir = t.TempDir()
	cfg.Content.IndexPath = filepath.Join(t.TempDir(), "index.md")
	cfg.Commands.Enabled = true

	indexDoc := "---\ntitle: Posts\n---\n"
	if err := os.WriteFile(cfg.Content.IndexPath, []byte(indexDoc), 0o644); err != nil {
		t.Fatalf("write index document: %v", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}
	cron := &recordingCron{}

	result, err := RegisterContainerCommands(testContainer(t), RegistrationOptions{
		Registry:      registry,
		Dispatcher:    dispatcher,
		CronRegistrar: cron.Registrar(),
		ImportCron:    "0 3 * * *",
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 6 {
		t.Fatalf("expected 6 handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != 6 {
		t.Fatalf("expected dispatcher subscriptions for every handler, got %d", len(dispatcher.subscriptions))
	}
	if len(cron.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(cron.registrations))
	}
	if got := cron.registrations[0].config.Expression; got != "0 3 * * *" {
		t.Fatalf("unexpected cron expression %q", got)
	}

	run, ok := cron.registrations[0].payload.(func() error)
	if !ok {
		t.Fatalf("expected cron payload func() error, got %T", cron.registrations[0].payload)
	}
	// The posts directory is empty, so the scheduled pass is a no-op.
	if err := run(); err != nil {
		t.Fatalf("cron payload: %v", err)
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	result, err := RegisterContainerCommands(testContainer(t), RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 6 {
		t.Fatalf("expected handlers to be built without registrars, got %d", len(result.Handlers))
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsPropagatesRegistryErrors(t *testing.T) {
	regErr := errors.New("registry full")
	registry := &recordingRegistry{err: regErr}

	result, err := RegisterContainerCommands(testContainer(t), RegistrationOptions{Registry: registry})
	if !errors.Is(err, regErr) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if len(result.Handlers) != 6 {
		t.Fatalf("expected handlers built despite registry errors, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("expected nil container to no-op, got %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers, got %d", len(result.Handlers))
	}
}
