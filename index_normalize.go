package blog

import (
	"sort"
	"strings"

	"github.com/goliatone/go-blog/indexes"
)

// CanonicalIndexCode normalizes user input into a go-blog index code.
//
// Codes are lowercase; runs of characters outside [a-z0-9_-] collapse into a
// single dash, and leading/trailing dashes are stripped.
func CanonicalIndexCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(trimmed))

	lastDash := false
	for _, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == '_' || r == '-':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-_")
}

// NormalizeRefPositions returns the refs ordered by position and renumbered
// to the dense 0..n-1 sequence the curated listing guarantees. Ties keep
// their input order; duplicate paths keep their first occurrence.
func NormalizeRefPositions(refs []indexes.PostRef) []indexes.PostRef {
	if len(refs) == 0 {
		return nil
	}

	out := make([]indexes.PostRef, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.Path]; ok {
			continue
		}
		seen[ref.Path] = struct{}{}
		out = append(out, ref)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	for i := range out {
		out[i].Position = i
	}
	return out
}
