package posts

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPostRepository creates a repository for Post entities keyed by slug.
func NewPostRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.Slug
		},
	})
}
