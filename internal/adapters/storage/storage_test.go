package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func newFilesystemProvider(t *testing.T, root string) *FilesystemProvider {
	t.Helper()
	provider, err := NewFilesystemProvider(root)
	if err != nil {
		t.Fatalf("new filesystem provider: %v", err)
	}
	return provider
}

func TestFilesystemProviderWritesBelowRoot(t *testing.T) {
	root := t.TempDir()
	provider := newFilesystemProvider(t, root)
	ctx := context.Background()

	if err := provider.Exec(ctx, interfaces.StorageOpEnsureDir, "posts/hello"); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if err := provider.Exec(ctx, interfaces.StorageOpWriteFile, "posts/hello/index.html", []byte("<html></html>")); err != nil {
		t.Fatalf("write file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "posts", "hello", "index.html"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestFilesystemProviderRequiresRoot(t *testing.T) {
	if _, err := NewFilesystemProvider("  "); err == nil {
		t.Fatal("expected error for blank root")
	}
}

func TestFilesystemProviderRejectsEscapes(t *testing.T) {
	provider := newFilesystemProvider(t, t.TempDir())

	err := provider.Exec(context.Background(), interfaces.StorageOpWriteFile, "../outside.txt", []byte("nope"))
	if !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestFilesystemProviderRemoveAllKeepsRoot(t *testing.T) {
	root := t.TempDir()
	provider := newFilesystemProvider(t, root)
	ctx := context.Background()

	if err := provider.Exec(ctx, interfaces.StorageOpWriteFile, "index.html", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := provider.Exec(ctx, interfaces.StorageOpRemoveAll, "."); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("expected root to survive: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty root, got %d entries", len(entries))
	}
}

func TestFilesystemProviderUnknownOp(t *testing.T) {
	provider := newFilesystemProvider(t, t.TempDir())
	if err := provider.Exec(context.Background(), "storage.chmod", "x"); !errors.Is(err, ErrUnsupportedOp) {
		t.Fatalf("expected ErrUnsupportedOp, got %v", err)
	}
}

func TestMemoryProviderRoundTrip(t *testing.T) {
	provider := NewMemoryProvider()
	ctx := context.Background()

	if err := provider.Exec(ctx, interfaces.StorageOpWriteFile, "feed.xml", []byte("<rss/>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, ok := provider.File("feed.xml")
	if !ok || string(data) != "<rss/>" {
		t.Fatalf("unexpected content %q (ok=%v)", data, ok)
	}

	if err := provider.Exec(ctx, interfaces.StorageOpRemoveAll, ""); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if files := provider.Files(); len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}
