package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"currency-cache/internal/domain/model"
	"currency-cache/internal/metrics"
	"currency-cache/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.currencyapi.com/v3"

	apiKeyHeader   = "apikey"
	maxPayloadSize = 16 << 20
)

// ExchangeAPI talks to the currencyapi.com v3 endpoints. It holds no
// per-call state and is safe for concurrent use.
type ExchangeAPI struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
	metrics    *metrics.Metrics
}

func NewExchangeAPI(baseURL, apiKey string, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) *ExchangeAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ExchangeAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: m,
	}
}

func (e *ExchangeAPI) FetchCurrencies(ctx context.Context) ([]byte, error) {
	endpoint, err := url.JoinPath(e.baseURL, "currencies")
	if err != nil {
		return nil, &model.FetchError{Op: "currencies", URL: e.baseURL, Err: err}
	}
	return e.download(ctx, "currencies", endpoint)
}

func (e *ExchangeAPI) FetchHistorical(ctx context.Context, date string) ([]byte, error) {
	endpoint, err := url.JoinPath(e.baseURL, "historical")
	if err != nil {
		return nil, &model.FetchError{Op: "historical", URL: e.baseURL, Err: err}
	}
	endpoint += "?" + url.Values{"date": {date}}.Encode()
	return e.download(ctx, "historical", endpoint)
}

func (e *ExchangeAPI) download(ctx context.Context, op, endpoint string) ([]byte, error) {
	start := time.Now()
	body, err := e.get(ctx, op, endpoint)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	e.metrics.UpstreamFetchesTotal.WithLabelValues(op, outcome).Inc()
	e.metrics.UpstreamFetchDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	return body, err
}

func (e *ExchangeAPI) get(ctx context.Context, op, endpoint string) ([]byte, error) {
	e.log.Info("Downloading from currency API", "op", op, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &model.FetchError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set(apiKeyHeader, e.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &model.FetchError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.log.Error("Currency API returned non-OK status", "op", op, "status_code", resp.StatusCode)
		return nil, &model.FetchError{
			Op:         op,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New("unexpected status"),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize+1))
	if err != nil {
		return nil, &model.FetchError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if len(body) > maxPayloadSize {
		return nil, &model.FetchError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: errors.New("response exceeds size limit")}
	}
	if !json.Valid(body) {
		return nil, &model.FetchError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: errors.New("response is not valid JSON")}
	}

	return body, nil
}
