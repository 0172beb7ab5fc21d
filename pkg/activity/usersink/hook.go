// Package usersink adapts blog activity events to the go-users activity
// record contract so hosts already running go-users can reuse its sinks.
package usersink

import (
	"context"
	"time"

	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/pkg/activity"
)

// Sink is the subset of the go-users activity sink the hook delivers to.
type Sink interface {
	Log(ctx context.Context, record usertypes.ActivityRecord) error
}

// Hook forwards activity events to a go-users sink. Events without a verb are
// dropped silently; identifier fields that fail to parse as UUIDs are left at
// their zero value rather than failing delivery.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Notifier.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || event.Verb == "" {
		return nil
	}

	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	data := make(map[string]any, len(event.Metadata)+2)
	for key, value := range event.Metadata {
		data[key] = value
	}
	if event.DefinitionCode != "" {
		data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		data["recipients"] = append([]string(nil), event.Recipients...)
	}

	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		OccurredAt: occurred,
		Data:       data,
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	if value == "" {
		return uuid.Nil
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
