package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/trogers1052/portfolio-analytics/internal/chart"
	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/portfolio"
)

// EventPublisher publishes portfolio change events
type EventPublisher interface {
	PublishHoldingAdded(ctx context.Context, h *models.Holding) error
	PublishHoldingRemoved(ctx context.Context, symbol string, removed int64) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	engine    *portfolio.Engine
	publisher EventPublisher
	log       zerolog.Logger
}

// NewHandler creates a new Handler. publisher may be nil.
func NewHandler(engine *portfolio.Engine, publisher EventPublisher, log zerolog.Logger) *Handler {
	return &Handler{
		engine:    engine,
		publisher: publisher,
		log:       log,
	}
}

// TrendResponse is the body of GET /trend/{symbol}
type TrendResponse struct {
	Symbol string              `json:"symbol"`
	Points []models.PricePoint `json:"points"`
}

// RemoveResponse is the body of DELETE /holdings/{symbol}
type RemoveResponse struct {
	Symbol  string `json:"symbol"`
	Removed int64  `json:"removed"`
}

// ListHoldings handles GET /holdings
func (h *Handler) ListHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.engine.ListHoldings(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// AddHolding handles POST /holdings
func (h *Handler) AddHolding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol   string `json:"symbol"`
		Quantity int64  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	holding, err := h.engine.AddHolding(r.Context(), req.Symbol, req.Quantity)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishHoldingAdded(r.Context(), holding); err != nil {
			h.log.Warn().Err(err).Str("symbol", holding.Symbol).Msg("Failed to publish holding added event")
		}
	}

	respondJSON(w, http.StatusCreated, holding)
}

// RemoveHolding handles DELETE /holdings/{symbol}
func (h *Handler) RemoveHolding(w http.ResponseWriter, r *http.Request) {
	symbol := portfolio.NormalizeSymbol(mux.Vars(r)["symbol"])

	removed, err := h.engine.RemoveHolding(r.Context(), symbol)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if h.publisher != nil && removed > 0 {
		if err := h.publisher.PublishHoldingRemoved(r.Context(), symbol, removed); err != nil {
			h.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to publish holding removed event")
		}
	}

	respondJSON(w, http.StatusOK, RemoveResponse{Symbol: symbol, Removed: removed})
}

// GetValuation handles GET /valuation
func (h *Handler) GetValuation(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.GetValuationSummary(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetTrend handles GET /trend/{symbol}
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	series, ok := h.trend(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, TrendResponse{Symbol: series.Symbol, Points: series.Points()})
}

// GetTrendChart handles GET /trend/{symbol}/chart.png
func (h *Handler) GetTrendChart(w http.ResponseWriter, r *http.Request) {
	series, ok := h.trend(w, r)
	if !ok {
		return
	}

	png, err := chart.RenderTrendChart(series.Symbol, series.Points())
	h.respondPNG(w, png, err)
}

// GetAllocationChart handles GET /allocation/chart.png
func (h *Handler) GetAllocationChart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.GetValuationSummary(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	png, err := chart.RenderAllocationChart(summary)
	h.respondPNG(w, png, err)
}

// GetRiskReport handles GET /risk
func (h *Handler) GetRiskReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.engine.GetRiskReport(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetRecommendation handles GET /recommendation
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	advisory, ok, err := h.engine.GetRecommendation(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, advisory)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// trend resolves the symbol and optional lookback query for trend routes
func (h *Handler) trend(w http.ResponseWriter, r *http.Request) (portfolio.Series, bool) {
	lookback := h.engine.Lookback()
	if raw := r.URL.Query().Get("lookback"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid lookback duration", http.StatusBadRequest)
			return portfolio.Series{}, false
		}
		lookback = parsed
	}

	return h.engine.GetTrendWithLookback(r.Context(), mux.Vars(r)["symbol"], lookback), true
}

func (h *Handler) respondPNG(w http.ResponseWriter, png []byte, err error) {
	if errors.Is(err, chart.ErrNotEnoughData) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, portfolio.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, portfolio.ErrQuoteUnavailable):
		status = http.StatusBadGateway
	default:
		h.log.Error().Err(err).Msg("Request failed")
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
