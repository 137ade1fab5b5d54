package classify

import (
	"github.com/ppiankov/reclasifica/internal/cache"
	"github.com/ppiankov/reclasifica/internal/model"
)

// Cached memoizes another classifier by label
type Cached struct {
	next  Classifier
	store cache.Cache
	hits  int
}

// NewCached wraps next with store
func NewCached(next Classifier, store cache.Cache) *Cached {
	return &Cached{next: next, store: store}
}

// Classify returns the memoized category for label, classifying on a miss
func (c *Cached) Classify(label string) model.Category {
	key := cache.CacheKey(label)
	if val, found := c.store.Get(key); found {
		c.hits++
		return model.Category(val)
	}

	category := c.next.Classify(label)
	c.store.Set(key, string(category), 0)
	return category
}

// Hits returns how many lookups were served from the cache
func (c *Cached) Hits() int {
	return c.hits
}
