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

// FileUUID identifies a source file by its slash separated path. Separator
// style does not change the result.
func FileUUID(path string) uuid.UUID {
	return UUID("sitefile:file:" + strings.ReplaceAll(strings.TrimSpace(path), `\`, "/"))
}

// RunUUID identifies one batch load. Runs are not reproducible, so the value
// is random.
func RunUUID() uuid.UUID {
	return uuid.New()
}
