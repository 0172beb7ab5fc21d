package indexes

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Index is the curated, ordered listing document. One row per index document
// (the default blog carries a single index with code "posts").
type Index struct {
	bun.BaseModel `bun:"table:indexes,alias:ix"`

	ID        uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Code      string    `bun:"code,notnull,unique" json:"code"`
	Title     string    `bun:"title,notnull"       json:"title"`
	Path      string    `bun:"path,notnull"        json:"path"`
	Checksum  string    `bun:"checksum,notnull"    json:"checksum"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Entries []*IndexEntry `bun:"rel:has-many,join:id=index_id" json:"entries,omitempty"`
}

// IndexEntry is one curated reference to a post, ordered by Position within
// its parent index. PostID is nil when the reference could not be resolved to
// a stored post (lax sync keeps the entry and flags it broken).
type IndexEntry struct {
	bun.BaseModel `bun:"table:index_entries,alias:ie"`

	ID        uuid.UUID  `bun:",pk,type:uuid"          json:"id"`
	IndexID   uuid.UUID  `bun:"index_id,notnull,type:uuid" json:"index_id"`
	Position  int        `bun:"position,notnull"       json:"position"`
	Title     string     `bun:"title,notnull"          json:"title"`
	Path      string     `bun:"path,notnull"           json:"path"`
	PostID    *uuid.UUID `bun:"post_id,type:uuid,nullzero" json:"post_id,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// PostRef is the materialized listing row handed to consumers: the curated
// (title, path) pair plus resolution metadata.
type PostRef struct {
	Position int        `json:"position"`
	Title    string     `json:"title"`
	Path     string     `json:"path"`
	PostID   *uuid.UUID `json:"post_id,omitempty"`
}
