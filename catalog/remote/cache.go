package remote

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/yogaland/yogaland/filesystem"
	"github.com/yogaland/yogaland/where"
)

type cacheData[T any] struct {
	Entries map[string]T `json:"entries"`
}

// cacher stores responses per catalog base URL in a single gache file.
type cacher[T any] struct {
	internal *gache.Cache[*cacheData[T]]
	mu       sync.RWMutex
}

func newCacher[T any](name string, lifetime time.Duration) *cacher[T] {
	return &cacher[T]{
		internal: gache.New[*cacheData[T]](
			&gache.Options{
				Path:       filepath.Join(where.Catalog(), name),
				Lifetime:   lifetime,
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

func (c *cacher[T]) Get(key string) mo.Option[T] {
	if c == nil {
		return mo.None[T]()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if t, ok := data.Entries[key]; ok {
		return mo.Some(t)
	}
	return mo.None[T]()
}

func (c *cacher[T]) Set(key string, t T) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		data = &cacheData[T]{Entries: make(map[string]T)}
	}
	data.Entries[key] = t
	return c.internal.Set(data)
}

func (c *cacher[T]) Delete(key string) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return err
	}

	delete(data.Entries, key)
	return c.internal.Set(data)
}
