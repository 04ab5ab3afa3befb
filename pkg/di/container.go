package di

import (
	"github.com/goliatone/go-restaurant-cache/cache"
	"github.com/goliatone/go-restaurant-cache/internal/cacheinfra"
	"github.com/goliatone/go-restaurant-cache/restaurantcache"
)

// Container provides dependency injection for cache related components.
// It manages the singleton cache engine and backend, and provides a
// factory method for creating cache-backed restaurant services.
type Container struct {
	engine  *cache.Engine
	backend cache.Backend
	config  cache.Config
}

// NewContainer creates a new DI container around the provided backend.
// The engine owns the codec and key composer; callers only choose the
// backend and the cache policy.
func NewContainer(config cache.Config, backend cache.Backend) (*Container, error) {
	engine, err := cache.NewEngine(config, backend)
	if err != nil {
		return nil, err
	}

	return &Container{
		engine:  engine,
		backend: backend,
		config:  config,
	}, nil
}

// NewContainerWithDefaults creates a new DI container using the default
// cache policy and an in-process memory backend. This is a convenience
// constructor for tests and single-process deployments that do not need
// a cache server.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig(), cacheinfra.NewMemoryBackend())
}

// NewRedisContainer creates a new DI container backed by a Redis server.
func NewRedisContainer(config cache.Config, redisConfig cacheinfra.RedisConfig) (*Container, error) {
	client := cacheinfra.NewRedisClient(redisConfig)
	return NewContainer(config, cacheinfra.NewRedisBackend(client))
}

// Engine returns the singleton cache engine instance.
// This allows access to the raw cache for advanced use cases.
func (c *Container) Engine() *cache.Engine {
	return c.engine
}

// Backend returns the backend the container was built around.
func (c *Container) Backend() cache.Backend {
	return c.backend
}

// Config returns a copy of the cache configuration used by this container.
// This is useful for debugging and monitoring purposes.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewCachedService creates a cache-backed restaurant service over the
// provided source-of-record store, wiring in the container's engine.
func NewCachedService(container *Container, store restaurantcache.Store) *restaurantcache.Service {
	return restaurantcache.New(store, container.engine)
}
