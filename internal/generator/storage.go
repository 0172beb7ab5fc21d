package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryAsset    writeCategory = "asset"
	categoryFeed     writeCategory = "feed"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryManifest writeCategory = "manifest"
)

// writeFileRequest describes a file write routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Data        []byte
	Category    writeCategory
	ContentType string
	Checksum    string
}

// artifactWriter abstracts storage provider specifics for generator outputs.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
	RemoveAll(ctx context.Context, path string) error
}

func newArtifactWriter(storage interfaces.StorageProvider) artifactWriter {
	if storage == nil {
		return noopWriter{}
	}
	return &storageWriter{storage: storage}
}

type storageWriter struct {
	storage interfaces.StorageProvider
}

func (w *storageWriter) EnsureDir(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return w.storage.Exec(ctx, interfaces.StorageOpEnsureDir, path)
}

func (w *storageWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	return w.storage.Exec(ctx, interfaces.StorageOpWriteFile,
		req.Path, req.Data, string(req.Category), req.ContentType, req.Checksum)
}

func (w *storageWriter) RemoveAll(ctx context.Context, path string) error {
	return w.storage.Exec(ctx, interfaces.StorageOpRemoveAll, path)
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }

func (noopWriter) RemoveAll(context.Context, string) error { return nil }
