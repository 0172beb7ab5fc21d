package index

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewIndexRepository creates a repository for Index entities keyed by code.
func NewIndexRepository(db *bun.DB) repository.Repository[*Index] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Index]{
		NewRecord: func() *Index { return &Index{} },
		GetID: func(ix *Index) uuid.UUID {
			return ix.ID
		},
		SetID: func(ix *Index, id uuid.UUID) {
			ix.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(ix *Index) string {
			return ix.Code
		},
	})
}

// NewIndexEntryRepository creates a repository for IndexEntry entities.
func NewIndexEntryRepository(db *bun.DB) repository.Repository[*IndexEntry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*IndexEntry]{
		NewRecord: func() *IndexEntry { return &IndexEntry{} },
		GetID: func(entry *IndexEntry) uuid.UUID {
			return entry.ID
		},
		SetID: func(entry *IndexEntry, id uuid.UUID) {
			entry.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(entry *IndexEntry) string {
			return entry.Path
		},
	})
}
