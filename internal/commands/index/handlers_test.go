package indexcmd

import (
	"context"
	"errors"
	"testing"

	index "github.com/goliatone/go-blog/internal/index"
	"github.com/goliatone/go-blog/internal/logging"
	goerrors "github.com/goliatone/go-errors"
)

type stubIndexService struct {
	syncCalls []index.SyncInput
	listCalls []index.ListInput

	syncReport *index.SyncReport
	listRefs   []index.PostRef

	syncErr error
	listErr error
}

func (s *stubIndexService) Sync(ctx context.Context, input index.SyncInput) (*index.SyncReport, error) {
	s.syncCalls = append(s.syncCalls, input)
	if s.syncErr != nil {
		return nil, s.syncErr
	}
	return s.syncReport, nil
}

func (s *stubIndexService) List(ctx context.Context, input index.ListInput) ([]index.PostRef, error) {
	s.listCalls = append(s.listCalls, input)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRefs, nil
}

func TestSyncIndexHandlerForwardsInput(t *testing.T) {
	service := &stubIndexService{
		syncReport: &index.SyncReport{Entries: 2},
	}
	handler := NewSyncIndexHandler(service, logging.NoOp(), FeatureGates{})

	strict := false
	cmd := SyncIndexCommand{
		Code:   "posts",
		Path:   "index.md",
		Source: []byte("# Posts\n"),
		Strict: &strict,
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute sync: %v", err)
	}
	if len(service.syncCalls) != 1 {
		t.Fatalf("expected one sync call, got %d", len(service.syncCalls))
	}
	call := service.syncCalls[0]
	if call.Code != cmd.Code || call.Path != cmd.Path {
		t.Fatalf("unexpected sync input %+v", call)
	}
	if string(call.Source) != string(cmd.Source) {
		t.Fatalf("expected source forwarded, got %q", call.Source)
	}
	if call.Strict == nil || *call.Strict {
		t.Fatal("expected strict override forwarded")
	}
}

func TestSyncIndexHandlerValidatesPayload(t *testing.T) {
	service := &stubIndexService{}
	handler := NewSyncIndexHandler(service, logging.NoOp(), FeatureGates{})

	err := handler.Execute(context.Background(), SyncIndexCommand{Path: "index.md"})
	if err == nil {
		t.Fatal("expected validation error for missing source")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.syncCalls) != 0 {
		t.Fatalf("expected no sync calls, got %d", len(service.syncCalls))
	}
}

func TestSyncIndexHandlerFeatureDisabled(t *testing.T) {
	service := &stubIndexService{}
	handler := NewSyncIndexHandler(service, logging.NoOp(), FeatureGates{
		IndexEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), SyncIndexCommand{
		Path:   "index.md",
		Source: []byte("# Posts\n"),
	})
	if !errors.Is(err, ErrIndexFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
}

func TestSyncIndexHandlerPropagatesServiceError(t *testing.T) {
	syncErr := errors.New("broken reference")
	service := &stubIndexService{syncErr: syncErr}
	handler := NewSyncIndexHandler(service, logging.NoOp(), FeatureGates{})

	err := handler.Execute(context.Background(), SyncIndexCommand{
		Path:   "index.md",
		Source: []byte("# Posts\n"),
	})
	if !errors.Is(err, syncErr) {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestListIndexHandlerInvokesCallback(t *testing.T) {
	service := &stubIndexService{
		listRefs: []index.PostRef{
			{Position: 0, Title: "Understanding Context", Path: "/_posts/2025-04-07-context.md"},
			{Position: 1, Title: "Semantic Caching", Path: "/_posts/2025-03-17-caching.md"},
		},
	}
	handler := NewListIndexHandler(service, logging.NoOp(), FeatureGates{})

	var got []index.PostRef
	cmd := ListIndexCommand{
		Code: "posts",
		ResultCallback: func(refs []index.PostRef) {
			got = refs
		},
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute list: %v", err)
	}
	if len(service.listCalls) != 1 || service.listCalls[0].Code != "posts" {
		t.Fatalf("unexpected list calls %+v", service.listCalls)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 refs via callback, got %d", len(got))
	}
	if got[0].Title != "Understanding Context" || got[1].Position != 1 {
		t.Fatalf("unexpected refs %+v", got)
	}
}

func TestListIndexHandlerNilService(t *testing.T) {
	handler := NewListIndexHandler(nil, logging.NoOp(), FeatureGates{})

	err := handler.Execute(context.Background(), ListIndexCommand{})
	if !errors.Is(err, ErrIndexFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
}
