package redisdata

import (
	"sync"
	"time"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

// refCache memoizes reference data reads. Expiry is checked lazily on
// access; there is no background sweep.
type refCache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	programs map[string]programsEntry
	settings map[string]settingsEntry
}

type programsEntry struct {
	fetchedAt time.Time
	programs  []types.Program
}

type settingsEntry struct {
	fetchedAt time.Time
	settings  *types.CounterOfferSettings
}

func newRefCache(ttl time.Duration) *refCache {
	return &refCache{
		ttl:      ttl,
		now:      time.Now,
		programs: map[string]programsEntry{},
		settings: map[string]settingsEntry{},
	}
}

func (c *refCache) fresh(fetchedAt time.Time) bool {
	return c.ttl > 0 && c.now().Sub(fetchedAt) < c.ttl
}

func (c *refCache) getPrograms(ownerID string) ([]types.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.programs[ownerID]
	if !ok || !c.fresh(e.fetchedAt) {
		return nil, false
	}
	return e.programs, true
}

func (c *refCache) putPrograms(ownerID string, programs []types.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.programs[ownerID] = programsEntry{fetchedAt: c.now(), programs: programs}
}

func (c *refCache) getSettings(ownerID string) (*types.CounterOfferSettings, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.settings[ownerID]
	if !ok || !c.fresh(e.fetchedAt) {
		return nil, false
	}
	return e.settings, true
}

func (c *refCache) putSettings(ownerID string, settings *types.CounterOfferSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings[ownerID] = settingsEntry{fetchedAt: c.now(), settings: settings}
}
