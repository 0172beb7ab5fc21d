package markdown

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/domain"
	internalposts "github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/activity"
	blogposts "github.com/goliatone/go-blog/posts"
)

type renameMigrator struct{}

func (renameMigrator) Apply(payload map[string]any) (map[string]any, error) {
	if categories, ok := payload["categories"]; ok {
		out := make(map[string]any, len(payload))
		for key, value := range payload {
			if key == "categories" {
				continue
			}
			out[key] = value
		}
		out["tags"] = categories
		return out, nil
	}
	return payload, nil
}

type rejectingValidator struct {
	err error
}

func (v rejectingValidator) Validate(map[string]any) error { return v.err }

type collectingNotifier struct {
	events []activity.Event
}

func (n *collectingNotifier) Notify(_ context.Context, event activity.Event) error {
	n.events = append(n.events, event)
	return nil
}

func newImportHarness(tb testing.TB, cfg ImporterConfig) (*Importer, *internalposts.Service) {
	tb.Helper()

	store := internalposts.NewService(internalposts.NewMemoryPostRepository())
	markdownSvc, err := NewService(Config{
		BasePath: filepath.Join("testdata", "posts"),
		Pattern:  "*.md",
	}, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}

	cfg.Store = store
	cfg.Markdown = markdownSvc
	return NewImporter(cfg), store
}

func TestImportDirectoryPersistsPosts(t *testing.T) {
	notifier := &collectingNotifier{}
	importer, store := newImportHarness(t, ImporterConfig{
		Migrator: renameMigrator{},
		Notifier: notifier,
	})
	ctx := context.Background()

	result, err := importer.ImportDirectory(ctx, ".", ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	if len(result.Imported) != 4 {
		t.Fatalf("expected 4 imports, got %d (%v)", len(result.Imported), result.Imported)
	}
	if len(result.Failed) != 1 || result.Failed[0].Path != "untitled-note.md" {
		t.Fatalf("expected untitled-note.md to fail, got %+v", result.Failed)
	}

	post, err := store.GetBySlug(ctx, "2025-04-07-self-hosting-llms")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if post.Title != "Self-Hosting LLMs: Lessons from the Trenches" {
		t.Fatalf("unexpected title %q", post.Title)
	}
	if post.Path != "/_posts/2025-04-07-self-hosting-llms.md" {
		t.Fatalf("unexpected path %q", post.Path)
	}
	if post.HTML == "" {
		t.Fatalf("expected rendered HTML to be stored")
	}
	if post.Status != domain.StatusPublished {
		t.Fatalf("expected published status, got %q", post.Status)
	}

	draft, err := store.GetBySlug(ctx, "2025-05-02-drafted-notes")
	if err != nil {
		t.Fatalf("GetBySlug draft: %v", err)
	}
	if draft.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %q", draft.Status)
	}

	legacy, err := store.GetBySlug(ctx, "2025-01-05-legacy-categories")
	if err != nil {
		t.Fatalf("GetBySlug legacy: %v", err)
	}
	if !slices.Contains(legacy.Tags, "archive") {
		t.Fatalf("expected migrated categories to land in tags, got %v", legacy.Tags)
	}
	if !legacy.PublishedAt.Equal(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected filename date, got %v", legacy.PublishedAt)
	}

	if len(notifier.events) != 4 {
		t.Fatalf("expected one activity event per import, got %d", len(notifier.events))
	}
	if notifier.events[0].Verb != activity.VerbImport || notifier.events[0].ObjectType != activity.ObjectTypePost {
		t.Fatalf("unexpected event %+v", notifier.events[0])
	}
}

func TestImportDirectoryIsIdempotent(t *testing.T) {
	importer, _ := newImportHarness(t, ImporterConfig{Migrator: renameMigrator{}})
	ctx := context.Background()

	if _, err := importer.ImportDirectory(ctx, ".", ImportOptions{}); err != nil {
		t.Fatalf("first pass: %v", err)
	}

	second, err := importer.ImportDirectory(ctx, ".", ImportOptions{})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(second.Imported) != 0 || len(second.Replaced) != 0 {
		t.Fatalf("expected unchanged files to be no-ops, got %+v", second)
	}
	if len(second.Skipped) != 4 {
		t.Fatalf("expected 4 skips, got %d", len(second.Skipped))
	}
}

func TestImportConflictRequiresForce(t *testing.T) {
	importer, store := newImportHarness(t, ImporterConfig{Migrator: renameMigrator{}})
	ctx := context.Background()

	if _, err := importer.ImportDirectory(ctx, ".", ImportOptions{}); err != nil {
		t.Fatalf("seed pass: %v", err)
	}

	// Simulate drift: the stored checksum no longer matches the file.
	stored, err := store.GetBySlug(ctx, "2025-03-17-semantic-caching")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	drifted := *stored
	drifted.Checksum = "stale"
	if _, err := store.Replace(ctx, &drifted); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	conflictPass, err := importer.ImportDirectory(ctx, ".", ImportOptions{})
	if err != nil {
		t.Fatalf("conflict pass: %v", err)
	}
	if len(conflictPass.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %+v", conflictPass)
	}
	conflict := conflictPass.Conflicts[0]
	if conflict.Slug != "2025-03-17-semantic-caching" {
		t.Fatalf("unexpected conflict slug %q", conflict.Slug)
	}
	if !errors.Is(conflict.Err, blogposts.ErrPostImmutable) {
		t.Fatalf("expected immutability error, got %v", conflict.Err)
	}

	forcePass, err := importer.ImportDirectory(ctx, ".", ImportOptions{Force: true})
	if err != nil {
		t.Fatalf("force pass: %v", err)
	}
	if !slices.Contains(forcePass.Replaced, "2025-03-17-semantic-caching") {
		t.Fatalf("expected forced replace, got %+v", forcePass)
	}

	repaired, err := store.GetBySlug(ctx, "2025-03-17-semantic-caching")
	if err != nil {
		t.Fatalf("GetBySlug after force: %v", err)
	}
	if repaired.Checksum == "stale" {
		t.Fatalf("expected checksum to be refreshed")
	}
	if repaired.ID != stored.ID {
		t.Fatalf("expected identity to survive forced replace")
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	importer, store := newImportHarness(t, ImporterConfig{Migrator: renameMigrator{}})
	ctx := context.Background()

	result, err := importer.ImportDirectory(ctx, ".", ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.Imported) != 4 {
		t.Fatalf("expected dry run to report 4 imports, got %d", len(result.Imported))
	}
	if _, err := store.GetBySlug(ctx, "2025-04-07-self-hosting-llms"); !errors.Is(err, blogposts.ErrPostNotFound) {
		t.Fatalf("expected store to stay empty, got %v", err)
	}
}

func TestImportValidationFailureIsRecorded(t *testing.T) {
	wantErr := errors.New("front matter invalid")
	importer, _ := newImportHarness(t, ImporterConfig{
		Validator: rejectingValidator{err: wantErr},
	})

	result, err := importer.ImportDirectory(context.Background(), ".", ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.Failed) != 5 {
		t.Fatalf("expected every document to fail validation, got %d", len(result.Failed))
	}
	if !errors.Is(result.Failed[0].Err, wantErr) {
		t.Fatalf("expected validator error, got %v", result.Failed[0].Err)
	}
}

func TestImportSyncsIndexAfterPass(t *testing.T) {
	synced := 0
	importer, _ := newImportHarness(t, ImporterConfig{
		Migrator:  renameMigrator{},
		SyncIndex: func(context.Context) error { synced++; return nil },
	})

	if _, err := importer.ImportDirectory(context.Background(), ".", ImportOptions{SyncIndex: true}); err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if synced != 1 {
		t.Fatalf("expected one index sync, got %d", synced)
	}
}
