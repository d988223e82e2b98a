package di

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-customer-directory/cache"
	"github.com/goliatone/go-customer-directory/customer"
	"github.com/goliatone/go-customer-directory/directory"
	"github.com/goliatone/go-customer-directory/resource"
)

// Container provides dependency injection for cache related components.
// It manages singleton instances of the cache service and key serializer,
// and provides a factory for assembling directory services. Cache lifecycle
// is tied to the container rather than ambient process-wide state.
type Container struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        cache.Config
}

// NewContainer creates a new DI container with the provided cache
// configuration. It initializes the cache service using the sturdyc adapter
// and sets up the default key serializer.
func NewContainer(config cache.Config) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	return &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		config:        config,
	}, nil
}

// NewContainerWithDefaults creates a new DI container using default
// configuration.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewDirectory assembles a directory service over the given store. Each call
// owns a fresh resource cache, so two directories never share collection
// state; the memoized lookup cache is the container's singleton.
func NewDirectory(c *Container, store customer.Store, log zerolog.Logger) *directory.Service {
	resources := resource.New[[]customer.Customer](log)
	return directory.New(store, resources, c.cacheService, c.keySerializer, log)
}
