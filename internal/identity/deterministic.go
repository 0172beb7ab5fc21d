package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID derives the stable identifier for a post from its slug.
func PostUUID(slug string) uuid.UUID {
	return UUID("go-blog:post:" + strings.ToLower(strings.TrimSpace(slug)))
}

// IndexUUID derives the stable identifier for an index from its code.
func IndexUUID(indexCode string) uuid.UUID {
	return UUID("go-blog:index:" + strings.ToLower(strings.TrimSpace(indexCode)))
}

// IndexEntryUUID derives the stable identifier for an index entry from its
// parent index and referenced post path.
func IndexEntryUUID(indexID uuid.UUID, path string) uuid.UUID {
	return UUID("go-blog:index_entry:" + indexID.String() + ":" + strings.TrimSpace(path))
}
