package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Defaults used by Open for remote backends.
const (
	DefaultRedisPrefix   = "sparsestress:"
	DefaultMongoDatabase = "sparsestress"
)

// Open returns the backend described by spec:
//
//	""                      caching disabled
//	"none"                  caching disabled
//	"file:///path" or path  FileCache
//	"redis://..."           RedisCache (also rediss://)
//	"mongodb://.../db"      MongoCache (also mongodb+srv://)
func Open(ctx context.Context, spec string) (Cache, error) {
	if spec == "" || spec == "none" {
		return NewNullCache(), nil
	}
	if !strings.Contains(spec, "://") {
		return NewFileCache(spec)
	}

	u, err := url.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	switch u.Scheme {
	case "file":
		return NewFileCache(u.Path)
	case "redis", "rediss":
		return NewRedisCache(ctx, spec, DefaultRedisPrefix)
	case "mongodb", "mongodb+srv":
		db := strings.Trim(u.Path, "/")
		if db == "" {
			db = DefaultMongoDatabase
		}
		return NewMongoCache(ctx, spec, db, DefaultMongoCollection)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, u.Scheme)
	}
}
