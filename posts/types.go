package posts

import (
	"time"

	"github.com/goliatone/go-blog/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is the canonical record for a single blog entry. Posts are immutable
// once stored: re-imports of unchanged files are no-ops and drifted files must
// be replaced explicitly.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID         `bun:",pk,type:uuid"            json:"id"`
	Slug        string            `bun:"slug,notnull,unique"      json:"slug"`
	Path        string            `bun:"path,notnull,unique"      json:"path"`
	Layout      string            `bun:"layout"                   json:"layout,omitempty"`
	Title       string            `bun:"title,notnull"            json:"title"`
	Author      *string           `bun:"author"                   json:"author,omitempty"`
	Description *string           `bun:"description"              json:"description,omitempty"`
	Tags        []string          `bun:"tags,type:jsonb"          json:"tags,omitempty"`
	Extra       map[string]any    `bun:"extra,type:jsonb"         json:"extra,omitempty"`
	Status      domain.Status     `bun:"status,notnull,default:'published'" json:"status"`
	PublishedAt time.Time         `bun:"published_at,notnull"     json:"published_at"`
	Body        string            `bun:"body,notnull"             json:"body"`
	HTML        string            `bun:"html"                     json:"html,omitempty"`
	Checksum    string            `bun:"checksum,notnull"         json:"checksum"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
