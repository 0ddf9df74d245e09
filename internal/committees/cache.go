package committees

import (
	"context"
	"log/slog"
	"sync"

	"statutes/internal/logging"
)

// Cache memoizes committee name mappings per congress for the duration of a
// run, populating on miss from the persistent store and then the source.
// A source failure degrades to an empty mapping for that congress (committee
// IDs stay null) and is not retried within the run.
type Cache struct {
	source Source
	store  *Store
	logger *slog.Logger

	mu         sync.RWMutex
	byCongress map[string]map[string]string
}

// NewCache builds a cache. Both source and store may be nil: a nil source
// disables lookups entirely, a nil store disables cross-run persistence.
func NewCache(source Source, store *Store, logger *slog.Logger) *Cache {
	return &Cache{
		source:     source,
		store:      store,
		logger:     logging.NewComponentLogger(logger, "committees"),
		byCongress: make(map[string]map[string]string),
	}
}

// Names returns the display-name to committee-ID mapping for a congress.
// The mapping may be empty; it is never nil.
func (c *Cache) Names(ctx context.Context, congress string) map[string]string {
	c.mu.RLock()
	names, ok := c.byCongress[congress]
	c.mu.RUnlock()
	if ok {
		return names
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if names, ok := c.byCongress[congress]; ok {
		return names
	}

	names = c.populate(ctx, congress)
	c.byCongress[congress] = names
	return names
}

// Resolve looks up the committee ID for a display name.
func (c *Cache) Resolve(ctx context.Context, congress, name string) (string, bool) {
	id, ok := c.Names(ctx, congress)[name]
	return id, ok
}

func (c *Cache) populate(ctx context.Context, congress string) map[string]string {
	if c.store != nil {
		names, found, err := c.store.Names(ctx, congress)
		if err != nil {
			c.logger.Warn("committee cache read failed",
				logging.String(logging.FieldCongress, congress),
				logging.Error(err))
		} else if found {
			c.logger.Debug("committee names loaded from cache",
				logging.String(logging.FieldCongress, congress),
				logging.Int("count", len(names)))
			return names
		}
	}

	if c.source == nil {
		return map[string]string{}
	}

	names, err := c.source.Fetch(ctx, congress)
	if err != nil {
		c.logger.Warn("committee name fetch failed; committee IDs will be null",
			logging.String(logging.FieldCongress, congress),
			logging.Error(err))
		return map[string]string{}
	}
	if names == nil {
		names = map[string]string{}
	}

	if c.store != nil && len(names) > 0 {
		if err := c.store.Replace(ctx, congress, names); err != nil {
			c.logger.Warn("committee cache write failed",
				logging.String(logging.FieldCongress, congress),
				logging.Error(err))
		}
	}

	c.logger.Debug("committee names fetched",
		logging.String(logging.FieldCongress, congress),
		logging.Int("count", len(names)))
	return names
}
