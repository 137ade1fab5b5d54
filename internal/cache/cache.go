package cache

import "time"

// Cache defines the interface for memoizing string results
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// CacheKey namespaces a classification cache key
func CacheKey(label string) string {
	return "reclasifica:v1:classify:" + label
}
