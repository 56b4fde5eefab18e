// internal/handlers/sales.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// SalesHandler handles sale recording and ledger queries
type SalesHandler struct {
	service ports.StockService
	reader  ports.StockReader
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(service ports.StockService, reader ports.StockReader, cache ports.CacheRepository, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{
		service: service,
		reader:  reader,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "sales")),
	}
}

// RecordSale handles POST /api/v1/sales
func (h *SalesHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cmd ports.SaleCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.RecordSale(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record sale",
			slog.String("item_id", cmd.ItemID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sale recorded",
		slog.String("entry_id", entry.ID.String()),
		slog.String("item_id", entry.ItemID.String()),
		slog.String("quantity", entry.Quantity.String()))

	respondJSON(w, http.StatusCreated, entry)
}

// ReviseSaleRequest is the body of a sale correction call.
type ReviseSaleRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ReviseSale handles PUT /api/v1/sales/{id}
func (h *SalesHandler) ReviseSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	var req ReviseSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.ReviseSale(ctx, entryID, req.Quantity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to revise sale",
			slog.String("entry_id", entryID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sale revised",
		slog.String("entry_id", entry.ID.String()),
		slog.String("quantity", entry.Quantity.String()))

	respondJSON(w, http.StatusOK, entry)
}

// ListLedger handles GET /api/v1/ledger
func (h *SalesHandler) ListLedger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := h.parseLedgerParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, total, err := h.reader.ListLedger(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list ledger entries",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to list ledger entries")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries":     entries,
		"page":        params.Page,
		"page_size":   params.PageSize,
		"total_count": total,
	})
}

// SaleStats handles GET /api/v1/stats/sales
func (h *SalesHandler) SaleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		// Include the whole named day
		to = t.AddDate(0, 0, 1)
	}

	if !from.Before(to) {
		respondError(w, http.StatusBadRequest, "from must be before to")
		return
	}

	var stats domain.SaleStats
	cacheKey := redis_a.BuildKey(redis_a.PrefixStats, "sales",
		from.Format("20060102"), to.Format("20060102"))
	err := h.cache.GetOrSet(ctx, cacheKey, &stats, func() (interface{}, error) {
		return h.reader.SaleStats(ctx, from, to)
	}, 5*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load sale stats",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to load sale stats")
		return
	}

	respondJSON(w, http.StatusOK, &stats)
}

func (h *SalesHandler) parseLedgerParams(r *http.Request) (ports.LedgerListParams, error) {
	params := ports.LedgerListParams{
		Page:     1,
		PageSize: 50,
	}

	q := r.URL.Query()

	if page := q.Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if limit := q.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 && l <= 100 {
			params.PageSize = l
		}
	}

	if v := q.Get("item_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return params, domain.NewValidation(domain.CodeInvalidSale, "invalid item_id filter")
		}
		params.ItemID = &id
	}
	if v := q.Get("group_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return params, domain.NewValidation(domain.CodeInvalidSaleGroup, "invalid group_id filter")
		}
		params.GroupID = &id
	}

	params.LossesOnly = q.Get("losses_only") == "true"

	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, domain.NewValidation(domain.CodeInvalidSale, "invalid from date, expected YYYY-MM-DD")
		}
		params.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, domain.NewValidation(domain.CodeInvalidSale, "invalid to date, expected YYYY-MM-DD")
		}
		end := t.AddDate(0, 0, 1)
		params.To = &end
	}

	return params, nil
}
