package ports

import (
	"context"
)

// RateRepository is the upstream API. Both calls return the raw response
// body of a successful (2xx) request.
type RateRepository interface {
	FetchCurrencies(ctx context.Context) ([]byte, error)
	FetchHistorical(ctx context.Context, date string) ([]byte, error)
}
