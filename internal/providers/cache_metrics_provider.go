package providers

import "rundash/internal/structures"

// MetricsCacheProvider counts payload hits and misses for /metrics.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	payload, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return payload, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *MetricsCacheProvider) Clear() {
	c.inner.Clear()
}

// NewInstrumentedCacheProvider wraps the payload cache with hit/miss counters.
// A disabled cache stays unwrapped so every request is not reported as a miss.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	payloads := NewCacheProvider(conf, logger)
	if _, disabled := payloads.(*noopCache); disabled {
		return payloads
	}
	return &MetricsCacheProvider{inner: payloads, metrics: metrics}
}
