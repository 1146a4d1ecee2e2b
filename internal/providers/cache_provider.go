package providers

import (
	"rundash/internal/structures"

	"github.com/coocood/freecache"
)

// CacheProviderInterface holds rendered dashboard payloads: the HTML page and
// the JSON bodies of /api/*, keyed by endpoint plus its parameters
// (e.g. "layers:10", "calendar:2024-04-06").
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	// Clear drops every payload. Called whenever a new activity table is loaded.
	Clear()
}

type CacheProvider struct {
	payloads *freecache.Cache
	ttl      int
}

// NewCacheProvider sizes the payload cache in megabytes. Payloads are derived
// from a table that does not change while serving, so a zero TTL is the norm.
func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled, every request renders")
		return &noopCache{}
	}

	ttl := int(conf.Cache.TTL.Seconds())
	logger.Infof(TypeApp, "Response cache: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		payloads: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:      ttl,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	payload, err := c.payloads.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set drops payloads larger than freecache's per-entry limit; they render on
// every request instead.
func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.payloads.Set([]byte(key), value, c.ttl)
}

func (c *CacheProvider) Clear() {
	c.payloads.Clear()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Clear()                      {}
