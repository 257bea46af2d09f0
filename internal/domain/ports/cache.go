package ports

import (
	"currency-cache/internal/domain/model"
)

// RateCache is the in-memory tier. Entries are never expired or evicted.
type RateCache interface {
	GetCatalog() (*model.CurrencyCatalog, bool)
	SetCatalog(catalog *model.CurrencyCatalog)
	GetRates(date string) (*model.RateSet, bool)
	SetRates(date string, rates *model.RateSet)
	Len() int
}

// SnapshotStore is the on-disk tier: one JSON document per cache key.
type SnapshotStore interface {
	// Load returns found=false with a nil error when no snapshot exists.
	Load(name string) (data []byte, found bool, err error)
	// Save replaces the snapshot atomically.
	Save(name string, data []byte) error
	// Path returns where the snapshot for name lives, for error reporting.
	Path(name string) string
}
