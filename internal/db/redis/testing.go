package redis

import "github.com/redis/rueidis"

// NewStoreForTest creates a Store with an injected rueidis.Client (for mock testing).
func NewStoreForTest(c rueidis.Client, prefix string) *Store {
	return newStore(c, prefix)
}
