package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle counts failed logins per username in Redis. Once the count
// reaches the limit the account stays locked until the key expires; every
// failure at or past the limit restarts the lock window.
type Throttle struct {
	rdb     *redis.Client
	limit   int64
	lockFor time.Duration
}

func NewThrottle(rdb *redis.Client, limit int64, lockFor time.Duration) *Throttle {
	if limit <= 0 {
		limit = 5
	}
	if lockFor <= 0 {
		lockFor = 15 * time.Minute
	}
	return &Throttle{rdb: rdb, limit: limit, lockFor: lockFor}
}

func failKey(username string) string { return fmt.Sprintf("mcc:login_fail:%s", username) }

// RecordFailure bumps the failure count and reports whether the account is
// now locked.
func (t *Throttle) RecordFailure(ctx context.Context, username string) (count int64, locked bool, err error) {
	k := failKey(username)
	count, err = t.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, false, err
	}
	if count == 1 || count >= t.limit {
		if err := t.rdb.Expire(ctx, k, t.lockFor).Err(); err != nil {
			return count, count >= t.limit, err
		}
	}
	return count, count >= t.limit, nil
}

// Locked returns the remaining lock time, zero when the account may try again.
func (t *Throttle) Locked(ctx context.Context, username string) (time.Duration, error) {
	k := failKey(username)
	n, err := t.rdb.Get(ctx, k).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if n < t.limit {
		return 0, nil
	}
	ttl, err := t.rdb.TTL(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Reset clears the failure count after a successful login.
func (t *Throttle) Reset(ctx context.Context, username string) error {
	return t.rdb.Del(ctx, failKey(username)).Err()
}
