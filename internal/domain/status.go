package domain

import (
	"strings"
	"time"
)

// Status represents lifecycle states for blog content.
type Status string

const (
	// StatusDraft indicates a post still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies a post available to readers.
	StatusPublished Status = "published"
	// StatusScheduled marks a post with a publish date in the future.
	StatusScheduled Status = "scheduled"
)

// NormalizeStatus coerces arbitrary status strings into a known representation,
// defaulting to published for empty input.
func NormalizeStatus(input string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(input)))
	switch status {
	case StatusDraft, StatusPublished, StatusScheduled:
		return status
	case "":
		return StatusPublished
	default:
		return StatusPublished
	}
}

// EffectiveStatus derives the lifecycle state from front-matter signals:
// `published: false` wins over everything, a future date schedules the post.
func EffectiveStatus(published bool, date time.Time, now time.Time) Status {
	if !published {
		return StatusDraft
	}
	if !date.IsZero() && date.After(now) {
		return StatusScheduled
	}
	return StatusPublished
}

// IsVisible reports whether a post in the given state should appear in
// listings and builds by default.
func IsVisible(status Status) bool {
	return status == StatusPublished
}
