package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/coffee-passport/internal/persistence"
)

// StampGuard is a Redis-backed fast path for the duplicate-stamp window.
// It is advisory only: guard misses and guard errors both fall through to
// the authoritative audit-log lookback query.
type StampGuard struct {
	redis  *persistence.Redis
	window time.Duration
}

// NewStampGuard constructs a guard. A nil or unconfigured Redis handle
// yields a guard whose checks always miss.
func NewStampGuard(r *persistence.Redis, window time.Duration) *StampGuard {
	return &StampGuard{redis: r, window: window}
}

// Recent reports whether this staff stamped this customer inside the window.
func (g *StampGuard) Recent(ctx context.Context, staffPhone, customerID string) (bool, error) {
	if g == nil || g.redis == nil || g.redis.Client == nil {
		return false, nil
	}
	count, err := g.redis.Client.Exists(ctx, guardKey(staffPhone, customerID)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Mark records a successful stamp for the window duration.
func (g *StampGuard) Mark(ctx context.Context, staffPhone, customerID string) error {
	if g == nil || g.redis == nil || g.redis.Client == nil {
		return nil
	}
	return g.redis.Client.Set(ctx, guardKey(staffPhone, customerID), "1", g.window).Err()
}

func guardKey(staffPhone, customerID string) string {
	return fmt.Sprintf("stamp-guard:%s:%s", staffPhone, customerID)
}
