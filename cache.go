package deedmarket

import (
	"sync"

	"github.com/deedmarket/deedmarket/schema"
)

// Cache holds the market stats snapshot served by /info. Refreshed on the
// scheduler, never inside an operation.
type Cache struct {
	stats schema.MarketStats
	lock  sync.RWMutex
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) GetStats() schema.MarketStats {
	c.lock.RLock()
	defer c.lock.RUnlock()
	stats := c.stats
	return stats
}

func (c *Cache) UpdateStats(stats schema.MarketStats) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.stats = stats
}
