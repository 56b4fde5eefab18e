// internal/handlers/item_types.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// ItemTypesHandler handles item category HTTP requests
type ItemTypesHandler struct {
	service ports.StockService
	reader  ports.StockReader
	logger  *slog.Logger
}

// NewItemTypesHandler creates a new item types handler
func NewItemTypesHandler(service ports.StockService, reader ports.StockReader, logger *slog.Logger) *ItemTypesHandler {
	return &ItemTypesHandler{
		service: service,
		reader:  reader,
		logger:  logger.With(slog.String("handler", "item_types")),
	}
}

// ItemTypeRequest is the body of a create or rename call.
type ItemTypeRequest struct {
	Name string `json:"name"`
}

// CreateItemType handles POST /api/v1/item-types
func (h *ItemTypesHandler) CreateItemType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ItemTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	itemType, err := h.service.CreateItemType(ctx, req.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create item type",
			slog.String("name", req.Name),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "item type created",
		slog.String("type_id", itemType.ID.String()),
		slog.String("name", itemType.Name))

	respondJSON(w, http.StatusCreated, itemType)
}

// GetItemType handles GET /api/v1/item-types/{id}
func (h *ItemTypesHandler) GetItemType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typeID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	itemType, err := h.reader.GetItemType(ctx, typeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get item type",
			slog.String("type_id", typeID.String()),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve item type")
		return
	}
	if itemType == nil {
		respondDomainError(w, domain.NewNotFound(domain.CodeItemTypeNotFound, "item type %s not found", typeID))
		return
	}

	respondJSON(w, http.StatusOK, itemType)
}

// ListItemTypes handles GET /api/v1/item-types
func (h *ItemTypesHandler) ListItemTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	types, err := h.reader.ListItemTypes(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list item types",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to list item types")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"item_types": types,
		"count":      len(types),
	})
}

// UpdateItemType handles PUT /api/v1/item-types/{id}
func (h *ItemTypesHandler) UpdateItemType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typeID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req ItemTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	itemType, err := h.service.RenameItemType(ctx, typeID, req.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to rename item type",
			slog.String("type_id", typeID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "item type renamed",
		slog.String("type_id", typeID.String()),
		slog.String("name", itemType.Name))

	respondJSON(w, http.StatusOK, itemType)
}

// DeleteItemType handles DELETE /api/v1/item-types/{id}
func (h *ItemTypesHandler) DeleteItemType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typeID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveItemType(ctx, typeID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete item type",
			slog.String("type_id", typeID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "item type deleted",
		slog.String("type_id", typeID.String()))

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Item type deleted successfully",
		"type_id": typeID.String(),
	})
}

func (h *ItemTypesHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item type ID format")
		return uuid.Nil, false
	}
	return id, true
}
