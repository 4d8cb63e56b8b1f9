// Package cache provides a small generic LRU cache used to memoize text
// measurements.
//
//	c := cache.New[string, float32](512)
//	w := c.GetOrCreate("hello", func() float32 { return measure("hello") })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
