package ports

import (
	"context"

	"currency-cache/internal/domain/model"
)

type CurrencyService interface {
	GetCurrencyCatalog(ctx context.Context) (*model.CurrencyCatalog, error)
	GetHistoricalRates(ctx context.Context, date string) (*model.RateSet, error)
	GetLatestRates(ctx context.Context) (*model.RateSet, error)
}
