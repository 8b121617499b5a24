package cache

import (
	"context"
	"time"
)

// NullCache misses on every Get and drops every Set. Open returns it for
// the "none" backend and the CLI for --no-cache.
type NullCache struct{}

var _ Cache = NullCache{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
