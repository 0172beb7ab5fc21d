package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// MemoryProvider keeps written artifacts in memory. Used by tests and
// available for hosts that want to inspect build output without touching
// disk.
type MemoryProvider struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMemoryProvider returns an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		files: map[string][]byte{},
		dirs:  map[string]struct{}{},
	}
}

func (p *MemoryProvider) Exec(ctx context.Context, op string, args ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch op {
	case interfaces.StorageOpEnsureDir:
		p.dirs[normalizeKey(stringArg(args, 0))] = struct{}{}
		return nil
	case interfaces.StorageOpWriteFile:
		key := normalizeKey(stringArg(args, 0))
		if key == "" {
			return fmt.Errorf("storage: write requires path")
		}
		data := bytesArg(args, 1)
		p.files[key] = append([]byte(nil), data...)
		return nil
	case interfaces.StorageOpRemoveAll:
		prefix := normalizeKey(stringArg(args, 0))
		for key := range p.files {
			if prefix == "" || key == prefix || strings.HasPrefix(key, prefix+"/") {
				delete(p.files, key)
			}
		}
		for key := range p.dirs {
			if prefix == "" || key == prefix || strings.HasPrefix(key, prefix+"/") {
				delete(p.dirs, key)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOp, op)
	}
}

// File returns the stored content for a path.
func (p *MemoryProvider) File(name string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.files[normalizeKey(name)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Files returns the sorted list of written paths.
func (p *MemoryProvider) Files() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.files))
	for key := range p.files {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func normalizeKey(name string) string {
	cleaned := path.Clean("/" + strings.TrimSpace(strings.ReplaceAll(name, "\\", "/")))
	return strings.TrimPrefix(cleaned, "/")
}
