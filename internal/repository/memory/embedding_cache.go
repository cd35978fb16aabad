package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// EmbeddingCache holds query-text embeddings so repeated searches skip the
// embedding provider round trip. Skill-name embeddings are never cached:
// those always go to the index.
type EmbeddingCache struct {
	cache *cache.Cache
}

func NewEmbeddingCache(ttl time.Duration) *EmbeddingCache {
	return &EmbeddingCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *EmbeddingCache) Get(text string) ([]float32, bool) {
	if x, found := c.cache.Get(text); found {
		return x.([]float32), true
	}
	return nil, false
}

func (c *EmbeddingCache) Set(text string, vector []float32) {
	c.cache.Set(text, vector, cache.DefaultExpiration)
}
