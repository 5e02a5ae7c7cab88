package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
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

// ResourceUUID identifies a resource descriptor by its registry name.
func ResourceUUID(name string) uuid.UUID {
	return UUID("go-backoffice:resource:" + strings.ToLower(strings.TrimSpace(name)))
}

// DraftUUID identifies the synthetic pending-operation slot used while a
// create is in flight, before the server has assigned a real id.
func DraftUUID(resource, nonce string) uuid.UUID {
	return UUID("go-backoffice:draft:" + strings.ToLower(strings.TrimSpace(resource)) + ":" + strings.TrimSpace(nonce))
}

// JournalUUID identifies a journal entry derived from its mutation key. The
// nonce keeps repeated mutations on the same record distinct; callers pass a
// timestamp or sequence value.
func JournalUUID(resource, kind, targetID, nonce string) uuid.UUID {
	return UUID("go-backoffice:journal:" + strings.ToLower(strings.TrimSpace(resource)) + ":" + kind + ":" + targetID + ":" + nonce)
}
