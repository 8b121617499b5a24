package cache

import (
	"context"
	"fmt"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend  string
	Dir      string
	RedisURL string
	MongoURI string
	MongoDB  string
	// Prefix namespaces Redis keys.
	Prefix string
}

// Open returns the backend named by opts.Backend: "file" (the default),
// "redis", "mongo" or "none".
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", "file":
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "redis":
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "eqsteps:"
		}
		c, err := NewRedisCache(ctx, opts.RedisURL, prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "mongo":
		db := opts.MongoDB
		if db == "" {
			db = "eqsteps"
		}
		c, err := NewMongoCache(ctx, opts.MongoURI, db)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "none":
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
}
