// Package storage provides StorageProvider implementations for generated
// site artifacts: a filesystem provider rooted below an output directory,
// an in-memory provider for tests, and a no-op provider for dry runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	ErrUnsupportedOp = errors.New("storage: unsupported operation")
	ErrOutsideRoot   = errors.New("storage: path escapes output root")
)

// FilesystemProvider writes artifacts below a root directory. Paths passed
// to Exec are relative to the root; anything resolving outside it is
// rejected.
type FilesystemProvider struct {
	root string
}

// NewFilesystemProvider returns a provider rooted at dir.
func NewFilesystemProvider(dir string) (*FilesystemProvider, error) {
	root := filepath.Clean(strings.TrimSpace(dir))
	if root == "" || root == "." {
		return nil, errors.New("storage: output root required")
	}
	return &FilesystemProvider{root: root}, nil
}

func (p *FilesystemProvider) Exec(ctx context.Context, op string, args ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch op {
	case interfaces.StorageOpEnsureDir:
		target, err := p.resolve(stringArg(args, 0))
		if err != nil {
			return err
		}
		return os.MkdirAll(target, 0o755)
	case interfaces.StorageOpWriteFile:
		target, err := p.resolve(stringArg(args, 0))
		if err != nil {
			return err
		}
		data := bytesArg(args, 1)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	case interfaces.StorageOpRemoveAll:
		rel := stringArg(args, 0)
		target, err := p.resolve(rel)
		if err != nil {
			return err
		}
		if rel == "" || rel == "." {
			// Clear the root's contents but keep the directory itself.
			entries, err := os.ReadDir(target)
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			for _, entry := range entries {
				if err := os.RemoveAll(filepath.Join(target, entry.Name())); err != nil {
					return err
				}
			}
			return nil
		}
		return os.RemoveAll(target)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOp, op)
	}
}

func (p *FilesystemProvider) resolve(rel string) (string, error) {
	if p.root == "" || p.root == "." {
		return "", errors.New("storage: output root required")
	}
	cleaned := filepath.Clean("/" + filepath.FromSlash(strings.TrimSpace(rel)))
	target := filepath.Join(p.root, cleaned)
	if target != p.root && !strings.HasPrefix(target, p.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return target, nil
}

func stringArg(args []any, idx int) string {
	if idx >= len(args) {
		return ""
	}
	value, _ := args[idx].(string)
	return value
}

func bytesArg(args []any, idx int) []byte {
	if idx >= len(args) {
		return nil
	}
	switch typed := args[idx].(type) {
	case []byte:
		return typed
	case string:
		return []byte(typed)
	default:
		return nil
	}
}
