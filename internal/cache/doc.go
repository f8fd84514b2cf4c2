// Package cache provides a generic, thread-safe LRU cache with a hard
// capacity and hit/miss counters.
//
//	c := cache.New[uint64, Block](256)
//	c.Put(id, block)
//	block, ok := c.Get(id)
//
// Cache must not be copied after creation (it contains a mutex).
package cache
