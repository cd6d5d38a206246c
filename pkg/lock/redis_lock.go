package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired means another worker holds the lock. Callers report this
// as a retryable conflict, not a policy rejection.
var ErrNotAcquired = errors.New("lock: not acquired")

// DraftLocker serializes workflow transitions per draft identity. Backed by
// Redis SET NX with a TTL so a crashed holder cannot block a draft forever.
type DraftLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftLocker(client *redis.Client, ttl time.Duration) *DraftLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &DraftLocker{client: client, ttl: ttl}
}

// Acquire takes the per-draft lock. The returned release func only deletes
// the key if this holder still owns it.
func (l *DraftLocker) Acquire(ctx context.Context, draftId uuid.UUID) (func(), error) {
	key := fmt.Sprintf("draft_lock:%s", draftId)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire draft lock: %w", err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	release := func() {
		// Compare-and-delete so an expired lock taken by someone else
		// is never removed by a stale holder.
		script := redis.NewScript(`
			if redis.call("GET", KEYS[1]) == ARGV[1] then
				return redis.call("DEL", KEYS[1])
			end
			return 0
		`)
		_ = script.Run(context.Background(), l.client, []string{key}, token).Err()
	}
	return release, nil
}
