// Package activity publishes content lifecycle events (imports, index syncs,
// site builds) to pluggable notifiers so host applications can feed audit
// trails or notification pipelines.
package activity

import (
	"context"
	"errors"
	"time"
)

// Channel and object identifiers used by the blog engine when emitting events.
const (
	ChannelBlog = "blog"

	ObjectTypePost  = "post"
	ObjectTypeIndex = "index"
	ObjectTypeSite  = "site"
)

// Verbs emitted by the content workflows.
const (
	VerbImport  = "import"
	VerbReplace = "replace"
	VerbSync    = "sync"
	VerbBuild   = "build"
)

// Event describes a single activity occurrence. ActorID, UserID, and TenantID
// are free-form strings so callers without user management can leave them
// empty; sinks that need UUIDs parse them on delivery.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Notifier receives activity events.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event Event) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// NoOp returns a notifier that drops every event.
func NoOp() Notifier {
	return NotifierFunc(func(context.Context, Event) error { return nil })
}

// Fanout delivers each event to every wrapped notifier, collecting errors.
type Fanout struct {
	notifiers []Notifier
}

// NewFanout builds a fan-out notifier; nil entries are ignored.
func NewFanout(notifiers ...Notifier) *Fanout {
	out := make([]Notifier, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			out = append(out, notifier)
		}
	}
	return &Fanout{notifiers: out}
}

// Notify delivers the event to every notifier, continuing past failures.
func (f *Fanout) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, notifier := range f.notifiers {
		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
