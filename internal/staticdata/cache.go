package staticdata

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"tft-rivals/internal/config"
	"tft-rivals/internal/riot"
)

// Fetcher is the slice of the Data Dragon client the cache needs.
type Fetcher interface {
	GetChampions(ctx context.Context) (map[string]riot.StaticEntry, error)
	GetItems(ctx context.Context) (map[string]riot.StaticEntry, error)
	GetTraits(ctx context.Context) (map[string]riot.StaticEntry, error)
}

// Set is one immutable snapshot of the TFT static definitions, keyed by the
// short ids that match payloads reference.
type Set struct {
	Champions map[string]riot.StaticEntry `json:"champions"`
	Items     map[string]riot.StaticEntry `json:"items"`
	Traits    map[string]riot.StaticEntry `json:"traits"`
	FetchedAt time.Time                   `json:"fetchedAt"`
}

func (s *Set) ChampionName(id string) string { return s.name(s.Champions, id) }
func (s *Set) ItemName(id string) string     { return s.name(s.Items, id) }
func (s *Set) TraitName(id string) string    { return s.name(s.Traits, id) }

func (s *Set) name(m map[string]riot.StaticEntry, id string) string {
	if s == nil {
		return ""
	}
	if entry, ok := m[id]; ok {
		return entry.Name
	}
	return ""
}

// Cache is the process-wide reference data cache. Concurrent Get calls
// collapse into one underlying fetch; after the TTL elapses the next Get
// refreshes, and a failed refresh serves the stale snapshot instead of
// failing the caller.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	current *Set
}

func NewCache(fetcher Fetcher, cfg *config.Config, logger zerolog.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     cfg.ReferenceDataTTL,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the current snapshot, fetching or refreshing it as needed.
func (c *Cache) Get(ctx context.Context) (*Set, error) {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	if current != nil && c.now().Sub(current.FetchedAt) < c.ttl {
		return current, nil
	}

	v, err, _ := c.group.Do("tft-static", func() (any, error) {
		// Re-check under the flight: a concurrent caller may have already
		// refreshed while this one queued.
		c.mu.RLock()
		latest := c.current
		c.mu.RUnlock()
		if latest != nil && c.now().Sub(latest.FetchedAt) < c.ttl {
			return latest, nil
		}

		set, err := c.fetchAll(ctx)
		if err != nil {
			if latest != nil {
				c.logger.Warn().Err(err).
					Time("fetched_at", latest.FetchedAt).
					Msg("reference data refresh failed, serving stale snapshot")
				return latest, nil
			}
			return nil, err
		}

		c.mu.Lock()
		c.current = set
		c.mu.Unlock()

		c.logger.Info().
			Int("champions", len(set.Champions)).
			Int("items", len(set.Items)).
			Int("traits", len(set.Traits)).
			Msg("reference data refreshed")
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Set), nil
}

func (c *Cache) fetchAll(ctx context.Context) (*Set, error) {
	g, gCtx := errgroup.WithContext(ctx)
	set := &Set{FetchedAt: c.now()}

	g.Go(func() error {
		var err error
		set.Champions, err = c.fetcher.GetChampions(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		set.Items, err = c.fetcher.GetItems(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		set.Traits, err = c.fetcher.GetTraits(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}
