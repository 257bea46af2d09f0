package cache

import (
	"sync"

	"currency-cache/internal/domain/model"
	"currency-cache/pkg/logger"
)

// MemoryCache is the in-memory tier. Historical rates are immutable, so
// entries live for the process lifetime and the map only grows.
type MemoryCache struct {
	catalog    *model.CurrencyCatalog
	historical map[string]*model.RateSet
	mutex      sync.RWMutex
	log        *logger.Logger
}

func NewMemoryCache(log *logger.Logger) *MemoryCache {
	return &MemoryCache{
		historical: make(map[string]*model.RateSet),
		log:        log,
	}
}

func (c *MemoryCache) GetCatalog() (*model.CurrencyCatalog, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.catalog == nil {
		c.log.Debug("Cache miss", "key", "currencies")
		return nil, false
	}
	c.log.Debug("Cache hit", "key", "currencies")
	return c.catalog, true
}

func (c *MemoryCache) SetCatalog(catalog *model.CurrencyCatalog) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.catalog = catalog
	c.log.Debug("Cache set", "key", "currencies", "currencies", len(catalog.Data))
}

func (c *MemoryCache) GetRates(date string) (*model.RateSet, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	rates, found := c.historical[date]
	if found {
		c.log.Debug("Cache hit", "key", date)
		return rates, true
	}

	c.log.Debug("Cache miss", "key", date)
	return nil, false
}

func (c *MemoryCache) SetRates(date string, rates *model.RateSet) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.historical[date] = rates
	c.log.Debug("Cache set", "key", date, "rates", len(rates.Data))
}

// Len returns the number of cached rate sets.
func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.historical)
}
