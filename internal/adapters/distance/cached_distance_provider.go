package distance

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/ports"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"
	"github.com/sirupsen/logrus"
)

// DistanceStore is a persistent pair cache such as cache.SQLDistanceCache.
type DistanceStore interface {
	Get(ctx context.Context, origin, destination string) (ports.DistanceResult, bool, error)
	Put(ctx context.Context, origin, destination string, r ports.DistanceResult) error
}

// CachedDistanceProvider answers from an in-process LRU, then the persistent
// store, and only then the wrapped provider. Fresh results are written back to
// both layers; write failures are logged and never fail the lookup.
type CachedDistanceProvider struct {
	next   ports.DistanceProvider
	memory gcache.Cache
	store  DistanceStore
}

// NewCachedDistanceProvider wraps next. store may be nil.
func NewCachedDistanceProvider(next ports.DistanceProvider, store DistanceStore, size int, ttl time.Duration) *CachedDistanceProvider {
	return &CachedDistanceProvider{
		next: next,
		memory: gcache.New(size).
			LRU().
			Expiration(ttl).
			Build(),
		store: store,
	}
}

func (c *CachedDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	o, d := origin.Key(), destination.Key()
	key := o + "|" + d

	if v, err := c.memory.Get(key); err == nil {
		if r, ok := v.(ports.DistanceResult); ok {
			return r, nil
		}
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		logrus.WithError(err).WithField("key", key).Warn("distance memory cache read failed")
	}

	if c.store != nil {
		r, ok, err := c.store.Get(ctx, o, d)
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("distance cache read failed")
		} else if ok {
			c.remember(key, r)
			return r, nil
		}
	}

	r, err := c.next.GetDistance(ctx, origin, destination)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("cached distance %s: %w", key, err)
	}

	c.remember(key, r)
	if c.store != nil {
		if err := c.store.Put(ctx, o, d, r); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("distance cache write failed")
		}
	}

	return r, nil
}

func (c *CachedDistanceProvider) remember(key string, r ports.DistanceResult) {
	if err := c.memory.Set(key, r); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("distance memory cache write failed")
	}
}
