package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

// ProvisionLock serialises provisioning attempts per email across processes.
// Key format: provision:lock:<lowercased email>. The TTL caps how long a
// crashed holder can block the email.
type ProvisionLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProvisionLock creates a ProvisionLock wrapping the given Redis client.
func NewProvisionLock(client *redis.Client, ttl time.Duration) *ProvisionLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ProvisionLock{client: client, ttl: ttl}
}

// Acquire takes the lock for email. Returns false when another attempt holds it.
func (l *ProvisionLock) Acquire(ctx context.Context, email string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(email), "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire provision lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock for email.
func (l *ProvisionLock) Release(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *ProvisionLock) key(email string) string {
	return "provision:lock:" + strings.ToLower(email)
}
