package cache

import (
	"fmt"
	"sync"
	"testing"

	"currency-cache/internal/domain/model"
	"currency-cache/pkg/logger"
)

func TestMemoryCache_Catalog(t *testing.T) {
	c := NewMemoryCache(logger.Discard())

	if _, found := c.GetCatalog(); found {
		t.Fatal("Expected empty cache to miss")
	}

	catalog := &model.CurrencyCatalog{Data: map[string]model.Currency{"USD": {Code: "USD"}}}
	c.SetCatalog(catalog)

	got, found := c.GetCatalog()
	if !found || got != catalog {
		t.Errorf("Expected stored catalog, got %v (found=%v)", got, found)
	}
}

func TestMemoryCache_Rates(t *testing.T) {
	c := NewMemoryCache(logger.Discard())

	if _, found := c.GetRates("2024-01-01"); found {
		t.Fatal("Expected empty cache to miss")
	}

	rates := &model.RateSet{Data: map[string]model.Rate{"EUR": {Code: "EUR", Value: 0.91}}}
	c.SetRates("2024-01-01", rates)

	got, found := c.GetRates("2024-01-01")
	if !found || got != rates {
		t.Errorf("Expected stored rates, got %v (found=%v)", got, found)
	}
	if _, found := c.GetRates("2024-01-02"); found {
		t.Error("Expected other dates to miss")
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(logger.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := fmt.Sprintf("2024-01-%02d", i%28+1)
			c.SetRates(date, &model.RateSet{Data: map[string]model.Rate{}})
			c.GetRates(date)
		}(i)
	}
	wg.Wait()

	if c.Len() != 28 {
		t.Errorf("Expected 28 distinct dates, got %d", c.Len())
	}
}
