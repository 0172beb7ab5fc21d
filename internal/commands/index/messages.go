package indexcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	blogindexes "github.com/goliatone/go-blog/indexes"
)

const (
	syncIndexMessageType = "blog.index.sync"
	listIndexMessageType = "blog.index.list"
)

// SyncIndexCommand upserts the curated index from its source document. The
// payload mirrors index.SyncInput so handlers can forward it unchanged.
type SyncIndexCommand struct {
	// Code identifies the index; empty falls back to the service default.
	Code string `json:"code,omitempty"`
	// Path is the document's repository path (e.g. "index.md").
	Path string `json:"path"`
	// Source is the raw index document content.
	Source []byte `json:"source"`
	// Strict overrides the service-level reference checking for this pass.
	Strict *bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (SyncIndexCommand) Type() string { return syncIndexMessageType }

// Validate ensures the document path and content are present.
func (cmd SyncIndexCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.index.sync.path_required", "path is required")
			}
			return nil
		})),
		validation.Field(&cmd.Source, validation.Required.Error("source document is required")),
	)
}

// ListRefsCallback receives the curated references produced by a list command.
type ListRefsCallback func([]blogindexes.PostRef)

// ListIndexCommand reads the curated listing for an index in document order.
type ListIndexCommand struct {
	// Code identifies the index; empty falls back to the service default.
	Code string `json:"code,omitempty"`
	// ResultCallback is invoked synchronously with the resolved references.
	ResultCallback ListRefsCallback `json:"-"`
}

// Type implements command.Message.
func (ListIndexCommand) Type() string { return listIndexMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (ListIndexCommand) Validate() error { return nil }
