package storage

import (
	"context"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// NoOpProvider accepts every operation without side effects.
type NoOpProvider struct{}

// NewNoOpProvider returns a provider that discards all writes.
func NewNoOpProvider() interfaces.StorageProvider {
	return NoOpProvider{}
}

func (NoOpProvider) Exec(context.Context, string, ...any) error { return nil }
