package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins per email in Redis.
// Key format: login:failures:<email>
//
// The counter expires one lockout window after the first failure, so a locked
// out address is released when the window passes without a reset.
type LoginThrottle struct {
	client  redis.Cmdable
	lockout time.Duration
}

// NewLoginThrottle wraps client with the given lockout window.
func NewLoginThrottle(client redis.Cmdable, lockout time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, lockout: lockout}
}

// Failures returns the current failure count for email.
func (t *LoginThrottle) Failures(ctx context.Context, email string) (int, error) {
	n, err := t.client.Get(ctx, failureKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("throttle read: %w", err)
	}
	return n, nil
}

// RecordFailure increments the counter and returns the new count.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) (int, error) {
	key := failureKey(email)

	var incr *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, t.lockout)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("throttle record: %w", err)
	}
	return int(incr.Val()), nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, failureKey(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (t *LoginThrottle) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

func failureKey(email string) string {
	return "login:failures:" + email
}
