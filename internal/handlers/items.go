// internal/handlers/items.go
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

// ItemsHandler handles item and allocation HTTP requests
type ItemsHandler struct {
	service ports.StockService
	reader  ports.StockReader
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewItemsHandler creates a new items handler
func NewItemsHandler(service ports.StockService, reader ports.StockReader, cache ports.CacheRepository, logger *slog.Logger) *ItemsHandler {
	return &ItemsHandler{
		service: service,
		reader:  reader,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "items")),
	}
}

// CreateItem handles POST /api/v1/items
func (h *ItemsHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cmd ports.CreateItemCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.CreateItem(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create item",
			slog.String("name", cmd.Name),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "item created",
		slog.String("item_id", item.ID.String()),
		slog.String("name", item.Name))

	respondJSON(w, http.StatusCreated, item)
}

// GetItem handles GET /api/v1/items/{id}
func (h *ItemsHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var item domain.Item
	cacheKey := redis_a.BuildKey(redis_a.PrefixItem, itemID.String())
	err := h.cache.GetOrSet(ctx, cacheKey, &item, func() (interface{}, error) {
		found, err := h.reader.GetItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, domain.NewNotFound(domain.CodeItemNotFound, "item %s not found", itemID)
		}
		return found, nil
	}, 5*time.Minute)

	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &item)
}

// ListItems handles GET /api/v1/items
func (h *ItemsHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := h.parseListParams(r)

	result, err := h.reader.ListItems(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list items",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListLowStock handles GET /api/v1/items/low-stock
func (h *ItemsHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.reader.ListItemsBelowReorder(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list low stock items",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to list low stock items")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// UpdateItem handles PUT /api/v1/items/{id}
func (h *ItemsHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var cmd ports.ReviseItemCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cmd.ItemID = itemID

	item, err := h.service.ReviseItem(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update item",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "item updated",
		slog.String("item_id", itemID.String()))

	respondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/items/{id}
func (h *ItemsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(ctx, itemID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete item",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "item deleted",
		slog.String("item_id", itemID.String()))

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Item deleted successfully",
		"item_id": itemID.String(),
	})
}

// RestockRequest is the body of a restock call.
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// RestockItem handles POST /api/v1/items/{id}/restock
func (h *ItemsHandler) RestockItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.RestockItem(ctx, itemID, req.Quantity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to restock item",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "item restocked",
		slog.String("item_id", itemID.String()),
		slog.String("quantity", req.Quantity.String()))

	respondJSON(w, http.StatusOK, item)
}

// AllocationRequest is the body of a retail allocation call.
type AllocationRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// SetAllocation handles PUT /api/v1/items/{id}/allocation
func (h *ItemsHandler) SetAllocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req AllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	alloc, err := h.service.SetAllocation(ctx, itemID, req.Quantity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to set allocation",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "retail allocation set",
		slog.String("item_id", itemID.String()),
		slog.String("quantity", req.Quantity.String()))

	respondJSON(w, http.StatusOK, alloc)
}

// GetAllocation handles GET /api/v1/items/{id}/allocation
func (h *ItemsHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	alloc, err := h.reader.GetAllocationByItem(ctx, itemID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get allocation",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve allocation")
		return
	}
	if alloc == nil {
		respondError(w, http.StatusNotFound, "No retail allocation for item")
		return
	}

	respondJSON(w, http.StatusOK, alloc)
}

func (h *ItemsHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parseListParams parses query parameters for listing items
func (h *ItemsHandler) parseListParams(r *http.Request) ports.ItemListParams {
	params := ports.ItemListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	params.Search = r.URL.Query().Get("search")
	params.SKU = r.URL.Query().Get("sku")
	params.LowStock = r.URL.Query().Get("low_stock") == "true"

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}
