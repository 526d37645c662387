package matchmaking

import (
	"strings"

	"github.com/google/uuid"
)

// dedupCache remembers activity+participant compositions that have already
// been resolved, so re-triggers of an unchanged composition skip the
// duplicate-session scan entirely. Membership only, process lifetime, no
// eviction: it is bounded by the number of distinct compositions that ever
// reach a decision. Entries are kept even when a later commit fails; a
// stale entry can only suppress a duplicate session, never create one.
type dedupCache struct {
	seen map[string]struct{}
}

func newDedupCache() *dedupCache {
	return &dedupCache{seen: make(map[string]struct{})}
}

func (c *dedupCache) contains(key string) bool {
	_, ok := c.seen[key]
	return ok
}

func (c *dedupCache) insert(key string) {
	c.seen[key] = struct{}{}
}

// compositionKey builds the cache key from the activity identity and the
// canonically ordered participant identities. User IDs, not names: names
// may collide across users.
func compositionKey(activityID uuid.UUID, participantIDs []uuid.UUID) string {
	var b strings.Builder
	b.WriteString(activityID.String())
	b.WriteByte(':')
	for i, id := range participantIDs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(id.String())
	}
	return b.String()
}
