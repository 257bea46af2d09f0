package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"currency-cache/internal/domain/model"
	"currency-cache/internal/domain/ports"
	"currency-cache/internal/service"
	"currency-cache/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// StatsProvider is implemented by *service.CacheManager.
type StatsProvider interface {
	Stats() service.Stats
}

type Handler struct {
	service ports.CurrencyService
	stats   StatsProvider
	log     *logger.Logger
}

func NewHandler(service ports.CurrencyService, stats StatsProvider, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		stats:   stats,
		log:     log,
	}
}

func (h *Handler) GetCurrenciesHandler(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.GetCurrencyCatalog(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, catalog)
}

func (h *Handler) GetLatestRatesHandler(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.GetLatestRates(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, rates)
}

func (h *Handler) GetHistoricalRatesHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameter: date")
		return
	}

	rates, err := h.service.GetHistoricalRates(r.Context(), date)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, rates)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.stats.Stats(),
	})
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, Response{
		Success: false,
		Error:   message,
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	var fetchErr *model.FetchError
	var storageErr *model.StorageError

	switch {
	case errors.Is(err, service.ErrInvalidDate):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid date format, use YYYY-MM-DD"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusServiceUnavailable
		errorMessage = "request cancelled"
	case errors.As(err, &fetchErr):
		statusCode = http.StatusBadGateway
		errorMessage = "currency data unavailable from upstream"
	case errors.As(err, &storageErr):
		statusCode = http.StatusInternalServerError
		errorMessage = "currency data unavailable from local storage"
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode, "path", r.URL.Path)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
