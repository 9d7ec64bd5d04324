package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginLimiter throttles repeated failed logins per email using Redis
// counters. When Redis is unreachable the limiter fails open: login
// availability is not tied to the cache tier.
type LoginLimiter struct {
	client      *redis.Client
	logger      *zap.Logger
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter builds a limiter. A nil client disables throttling.
func NewLoginLimiter(client *redis.Client, logger *zap.Logger, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, logger: logger, maxAttempts: maxAttempts, window: window}
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", strings.ToLower(strings.TrimSpace(email)))
}

// Allow reports whether another login attempt is permitted for the email.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.client == nil {
		return true
	}
	count, err := l.client.Get(ctx, l.key(email)).Int()
	if err != nil {
		if err != redis.Nil {
			l.logger.Warn("login limiter unavailable", zap.Error(err))
		}
		return true
	}
	return count < l.maxAttempts
}

// RecordFailure increments the failed-attempt counter for the email.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}
	key := l.key(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return
	}
	if count == 1 {
		_ = l.client.Expire(ctx, key, l.window).Err()
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}
	_ = l.client.Del(ctx, l.key(email)).Err()
}
