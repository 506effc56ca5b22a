package cache

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// redisPrefix namespaces dockyard's keys in a shared Redis.
const redisPrefix = "dockyard:"

// Open returns the backend named by rawURL:
//
//	""                          file cache in defaultDir
//	"none", "null", "off"       NullCache
//	"file:///var/cache/dock"    FileCache in the given directory
//	"redis://host:6379/0"       RedisCache (also rediss://)
//	"mongodb://host/db"         MongoCache using db (also mongodb+srv://)
func Open(ctx context.Context, rawURL, defaultDir string) (Cache, error) {
	switch strings.ToLower(rawURL) {
	case "":
		if defaultDir == "" {
			return NewNullCache(), nil
		}
		return NewFileCache(defaultDir)
	case "none", "null", "off":
		return NewNullCache(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache url")
	}
	switch u.Scheme {
	case "file":
		dir := u.Path
		if u.Host != "" {
			dir = u.Host + u.Path
		}
		if dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache url %q has no directory", rawURL)
		}
		return NewFileCache(dir)
	case "redis", "rediss":
		c, err := NewRedisCache(ctx, rawURL, redisPrefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "mongodb", "mongodb+srv":
		c, err := NewMongoCache(ctx, rawURL, strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported cache backend %q", u.Scheme)
}
