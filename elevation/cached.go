package elevation

import (
	"context"
	"strconv"

	"github.com/golang/groupcache/singleflight"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/paulmach/orb"
)

// Cached remembers the answers of another oracle, keyed by the exact point list.
// Concurrent identical lookups share one backend call. It is safe for concurrent use.
type Cached struct {
	backend Oracle
	cache   *lru.Cache[uint64, []float64]
	group   singleflight.Group
}

func NewCached(backend Oracle, size int) (*Cached, error) {
	c, err := lru.New[uint64, []float64](size)
	if err != nil {
		return nil, err
	}
	return &Cached{backend: backend, cache: c}, nil
}

// Elevations answers from the cache or asks the backend once for all concurrent
// identical lookups. The shared backend call ignores the cancellation of the caller
// that started it, so the other waiters are not failed by it; a canceled caller
// still gets its own context error.
func (c *Cached) Elevations(ctx context.Context, points []orb.Point) ([]float64, error) {
	key, err := hashstructure.Hash(points, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, err
	}
	if v, ok := c.cache.Get(key); ok {
		return clone(v), nil
	}
	v, err := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
		v, err := c.backend.Elevations(context.WithoutCancel(ctx), points)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, clone(v))
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return clone(v.([]float64)), nil
}

// Len is the number of cached lookups.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
