package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// submitGuardTTL covers the window in which a duplicate submit (double-click,
// retry after timeout) could otherwise create a second booking.
const submitGuardTTL = 24 * time.Hour

// SubmitGuard deduplicates booking submits keyed by the client-generated
// request id.
type SubmitGuard struct {
	rdb *redis.Client
}

func NewSubmitGuard(rdb *redis.Client) *SubmitGuard {
	return &SubmitGuard{rdb: rdb}
}

func submitKey(requestID string) string {
	return fmt.Sprintf("booking:submit:%s", requestID)
}

// Reserve claims the request id. It returns false when another submit with
// the same id already holds the claim.
func (g *SubmitGuard) Reserve(ctx context.Context, requestID string) (bool, error) {
	return g.rdb.SetNX(ctx, submitKey(requestID), "1", submitGuardTTL).Result()
}

// Release frees the claim so a failed submit can be retried with the same id.
func (g *SubmitGuard) Release(ctx context.Context, requestID string) error {
	return g.rdb.Del(ctx, submitKey(requestID)).Err()
}
