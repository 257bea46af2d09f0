package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"currency-cache/internal/domain/model"
	"currency-cache/internal/domain/ports"
	"currency-cache/internal/metrics"
	"currency-cache/pkg/logger"
	"currency-cache/pkg/utils"

	"golang.org/x/sync/singleflight"
)

var ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")

const (
	catalogKey  = "currencies"
	catalogFile = "currencies.json"

	kindCurrencies = "currencies"
	kindHistorical = "historical"
)

func historicalFile(date string) string {
	return fmt.Sprintf("historical_%s.json", date)
}

// CacheManager resolves the currency catalog and per-date rate sets through
// memory, then the snapshot directory, then the upstream API. It is the only
// writer of the memory tier and the snapshot directory.
//
// Lookups for different keys run in parallel. Concurrent lookups for the same
// uncached key share one fill, so a key is fetched and written at most once
// at a time.
type CacheManager struct {
	repository ports.RateRepository
	snapshots  ports.SnapshotStore
	cache      ports.RateCache
	log        *logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
	inflight   singleflight.Group
}

type Option func(*CacheManager)

// WithClock replaces time.Now as the source of "now" for GetLatestRates.
func WithClock(now func() time.Time) Option {
	return func(m *CacheManager) {
		m.now = now
	}
}

func NewCacheManager(repository ports.RateRepository, snapshots ports.SnapshotStore, cache ports.RateCache, log *logger.Logger, m *metrics.Metrics, opts ...Option) *CacheManager {
	manager := &CacheManager{
		repository: repository,
		snapshots:  snapshots,
		cache:      cache,
		log:        log,
		metrics:    m,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager
}

func (s *CacheManager) GetCurrencyCatalog(ctx context.Context) (*model.CurrencyCatalog, error) {
	return lookup(ctx, s, tier[model.CurrencyCatalog]{
		kind:   kindCurrencies,
		key:    catalogKey,
		file:   catalogFile,
		get:    s.cache.GetCatalog,
		set:    s.cache.SetCatalog,
		decode: model.DecodeCatalog,
		fetch:  s.repository.FetchCurrencies,
	})
}

func (s *CacheManager) GetHistoricalRates(ctx context.Context, date string) (*model.RateSet, error) {
	if !utils.IsCalendarDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	return lookup(ctx, s, tier[model.RateSet]{
		kind: kindHistorical,
		key:  date,
		file: historicalFile(date),
		get: func() (*model.RateSet, bool) {
			return s.cache.GetRates(date)
		},
		set: func(rates *model.RateSet) {
			s.cache.SetRates(date, rates)
			s.metrics.CachedRateSets.Set(float64(s.cache.Len()))
		},
		decode: model.DecodeRateSet,
		fetch: func(ctx context.Context) ([]byte, error) {
			return s.repository.FetchHistorical(ctx, date)
		},
	})
}

// GetLatestRates returns the rates for the most recent fully elapsed UTC day.
// The current day is never requested because its upstream data is not final.
func (s *CacheManager) GetLatestRates(ctx context.Context) (*model.RateSet, error) {
	date := utils.NearestSettledDate(s.now())
	s.log.Debug("Resolved latest rates date", "date", date)
	return s.GetHistoricalRates(ctx, date)
}

type Stats struct {
	CatalogLoaded bool `json:"catalog_loaded"`
	RateSets      int  `json:"rate_sets"`
}

func (s *CacheManager) Stats() Stats {
	_, loaded := s.cache.GetCatalog()
	return Stats{
		CatalogLoaded: loaded,
		RateSets:      s.cache.Len(),
	}
}

// tier binds one cache key to its memory slot, snapshot file and upstream call.
type tier[T any] struct {
	kind   string
	key    string
	file   string
	get    func() (*T, bool)
	set    func(*T)
	decode func([]byte) (*T, error)
	fetch  func(ctx context.Context) ([]byte, error)
}

func lookup[T any](ctx context.Context, s *CacheManager, t tier[T]) (*T, error) {
	if v, found := t.get(); found {
		s.metrics.CacheLookupsTotal.WithLabelValues(t.kind, "memory").Inc()
		return v, nil
	}

	// The fill outlives any single caller so that one cancelled request does
	// not fail the others waiting on the same key. The HTTP client timeout
	// bounds it.
	fillCtx := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(t.key, func() (any, error) {
		return fill(fillCtx, s, t)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}

func fill[T any](ctx context.Context, s *CacheManager, t tier[T]) (*T, error) {
	// A previous fill may have completed between the caller's memory check
	// and this one starting.
	if v, found := t.get(); found {
		s.metrics.CacheLookupsTotal.WithLabelValues(t.kind, "memory").Inc()
		return v, nil
	}

	data, found, err := s.snapshots.Load(t.file)
	if err != nil {
		s.log.Error("Failed to read snapshot", "key", t.key, "error", err)
		return nil, err
	}
	if found {
		v, err := t.decode(data)
		if err != nil {
			s.log.Error("Corrupt snapshot", "key", t.key, "file", t.file, "error", err)
			return nil, &model.StorageError{Op: "decode", Path: s.snapshots.Path(t.file), Err: err}
		}
		t.set(v)
		s.metrics.CacheLookupsTotal.WithLabelValues(t.kind, "disk").Inc()
		s.log.Debug("Loaded from snapshot", "key", t.key)
		return v, nil
	}

	body, err := t.fetch(ctx)
	if err != nil {
		s.log.Error("Failed to fetch from currency API", "key", t.key, "error", err)
		return nil, err
	}

	v, err := t.decode(body)
	if err != nil {
		s.log.Error("Unexpected currency API payload", "key", t.key, "error", err)
		return nil, &model.FetchError{Op: t.kind, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if err := s.snapshots.Save(t.file, body); err != nil {
		s.log.Error("Failed to write snapshot", "key", t.key, "error", err)
		return nil, err
	}

	t.set(v)
	s.metrics.CacheLookupsTotal.WithLabelValues(t.kind, "remote").Inc()
	s.log.Info("Fetched from currency API", "key", t.key)
	return v, nil
}
