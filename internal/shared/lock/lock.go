// Package lock provides the cross-replica mutex used by scheduled jobs.
package lock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"career-backend/internal/shared/telemetry"
)

// Locker acquires a named lease. release is safe to call when acquired is false.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (acquired bool, release func(), err error)
}

// Local always grants the lease. Used when only one replica runs the schedule.
type Local struct{}

func (Local) Acquire(context.Context, string, time.Duration) (bool, func(), error) {
	return true, func() {}, nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis holds leases with SET NX and releases them only if still owned.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis connects to addr and pings it.
func NewRedis(ctx context.Context, addr, password string) (*Redis, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis addr is empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Redis{client: client, prefix: "career:lock:"}, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client redis.UniversalClient) *Redis {
	return &Redis{client: client, prefix: "career:lock:"}
}

func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, func(), error) {
	noop := func() {}
	if r == nil || r.client == nil {
		return false, noop, errors.New("redis unavailable")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	full := r.prefix + key
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return false, noop, err
	}
	if !ok {
		return false, noop, nil
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, r.client, []string{full}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			telemetry.Warn("lock.release_failed", map[string]any{"key": full, "error": err.Error()})
		}
	}
	return true, release, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
