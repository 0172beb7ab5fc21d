package index

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	blogindexes "github.com/goliatone/go-blog/indexes"
)

// MemoryIndexRepository is the default in-process store used when no database
// is configured.
type MemoryIndexRepository struct {
	mu      sync.RWMutex
	byCode  map[string]*Index
	entries map[uuid.UUID][]*IndexEntry
}

// NewMemoryIndexRepository constructs an empty in-memory index store.
func NewMemoryIndexRepository() *MemoryIndexRepository {
	return &MemoryIndexRepository{
		byCode:  map[string]*Index{},
		entries: map[uuid.UUID][]*IndexEntry{},
	}
}

func (r *MemoryIndexRepository) Save(ctx context.Context, index *Index) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if index.ID == uuid.Nil {
		index.ID = uuid.New()
	}

	stored := cloneIndex(index)
	now := time.Now().UTC()
	if existing, ok := r.byCode[index.Code]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.byCode[stored.Code] = stored
	return cloneIndex(stored), nil
}

func (r *MemoryIndexRepository) GetByCode(ctx context.Context, code string) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", code, blogindexes.ErrIndexNotFound)
	}
	return cloneIndex(record), nil
}

func (r *MemoryIndexRepository) ReplaceEntries(ctx context.Context, indexID uuid.UUID, entries []*IndexEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*IndexEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, cloneEntry(entry))
	}
	r.entries[indexID] = out
	return nil
}

func (r *MemoryIndexRepository) ListEntries(ctx context.Context, indexID uuid.UUID) ([]*IndexEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[indexID]
	out := make([]*IndexEntry, 0, len(stored))
	for _, entry := range stored {
		out = append(out, cloneEntry(entry))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func cloneIndex(in *Index) *Index {
	if in == nil {
		return nil
	}
	out := *in
	out.Entries = nil
	return &out
}

func cloneEntry(in *IndexEntry) *IndexEntry {
	if in == nil {
		return nil
	}
	out := *in
	if in.PostID != nil {
		id := *in.PostID
		out.PostID = &id
	}
	return &out
}
