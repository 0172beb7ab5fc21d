package domain

import internaldomain "github.com/goliatone/go-blog/internal/domain"

// Status represents lifecycle states for blog entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a post still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies a post available to readers.
	StatusPublished = internaldomain.StatusPublished
	// StatusScheduled marks a post whose publish date lies in the future.
	StatusScheduled = internaldomain.StatusScheduled
)
