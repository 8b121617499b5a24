// Package cache stores rendered artifacts and layouts keyed by a hash of
// the instructions and the options that produced them.
//
// Backends:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a Redis server, shared by preview servers
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing
//
// Keys come from a [Keyer] so that callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
