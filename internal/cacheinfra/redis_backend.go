package cacheinfra

import (
	"bufio"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-restaurant-cache/cache"
)

// RedisConfig holds the connection settings for the Redis backend.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password authenticates the connection. Empty disables auth.
	Password string

	// DB selects the logical Redis database.
	DB int

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration
}

// DefaultRedisConfig returns a RedisConfig with sensible defaults for a
// local Redis instance.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:        "localhost:6379",
		DB:          0,
		DialTimeout: 5 * time.Second,
	}
}

// NewRedisClient builds a go-redis client from the config. The caller owns
// the client lifecycle and injects it into NewRedisBackend; the backend
// never creates global connection state of its own.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
}

// redisBackend adapts a go-redis client to the cache.Backend contract.
// Expiry is native Redis TTL, so no background sweep is needed here.
type redisBackend struct {
	client *redis.Client
}

// NewRedisBackend wraps an injected Redis client. Per-call deadlines come
// from the caller's context; the engine bounds every call with its
// configured op timeout.
func NewRedisBackend(client *redis.Client) cache.Backend {
	return &redisBackend{client: client}
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrEntryNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (b *redisBackend) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, payload, ttl).Err()
}

func (b *redisBackend) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return b.client.Del(ctx, keys...).Result()
}

func (b *redisBackend) Keys(ctx context.Context, pattern string) ([]string, error) {
	return b.client.Keys(ctx, pattern).Result()
}

func (b *redisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *redisBackend) Info(ctx context.Context) (cache.ServerInfo, error) {
	raw, err := b.client.Info(ctx, "server", "memory", "clients", "stats").Result()
	if err != nil {
		return cache.ServerInfo{}, err
	}
	return parseServerInfo(raw), nil
}

// parseServerInfo extracts the fields we report from the INFO text format:
// "key:value" lines grouped under "# Section" headers.
func parseServerInfo(raw string) cache.ServerInfo {
	var info cache.ServerInfo

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		switch name {
		case "redis_version":
			info.Version = value
		case "used_memory_human":
			info.UsedMemory = value
		case "connected_clients":
			if n, err := strconv.Atoi(value); err == nil {
				info.ConnectedClients = n
			}
		case "keyspace_hits":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				info.KeyspaceHits = n
			}
		case "keyspace_misses":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				info.KeyspaceMisses = n
			}
		}
	}

	return info
}
