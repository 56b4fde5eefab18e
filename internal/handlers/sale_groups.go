// internal/handlers/sale_groups.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// SaleGroupsHandler handles grouped customer transactions
type SaleGroupsHandler struct {
	service ports.StockService
	reader  ports.StockReader
	logger  *slog.Logger
}

// NewSaleGroupsHandler creates a new sale groups handler
func NewSaleGroupsHandler(service ports.StockService, reader ports.StockReader, logger *slog.Logger) *SaleGroupsHandler {
	return &SaleGroupsHandler{
		service: service,
		reader:  reader,
		logger:  logger.With(slog.String("handler", "sale_groups")),
	}
}

// SaleGroupResponse is a group with its member ledger entries.
type SaleGroupResponse struct {
	*domain.SaleGroup
	Entries []domain.LedgerEntry `json:"entries"`
}

// CreateSaleGroup handles POST /api/v1/sale-groups
func (h *SaleGroupsHandler) CreateSaleGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cmd ports.SaleGroupCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	group, err := h.service.RecordSaleGroup(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record sale group",
			slog.Int("lines", len(cmd.Lines)),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sale group recorded",
		slog.String("group_id", group.ID.String()),
		slog.Int("lines", len(cmd.Lines)))

	respondJSON(w, http.StatusCreated, group)
}

// GetSaleGroup handles GET /api/v1/sale-groups/{id}
func (h *SaleGroupsHandler) GetSaleGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	group, err := h.reader.GetSaleGroup(ctx, groupID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get sale group",
			slog.String("group_id", groupID.String()),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve sale group")
		return
	}
	if group == nil {
		respondError(w, http.StatusNotFound, "Sale group not found")
		return
	}

	entries, err := h.reader.ListLedgerByGroup(ctx, groupID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list group entries",
			slog.String("group_id", groupID.String()),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve sale group entries")
		return
	}

	respondJSON(w, http.StatusOK, SaleGroupResponse{SaleGroup: group, Entries: entries})
}

// ListSaleGroups handles GET /api/v1/sale-groups
func (h *SaleGroupsHandler) ListSaleGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, pageSize := 1, 50
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			pageSize = l
		}
	}

	groups, total, err := h.reader.ListSaleGroups(ctx, page, pageSize)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list sale groups",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to list sale groups")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sale_groups": groups,
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
	})
}

// DeleteSaleGroup handles DELETE /api/v1/sale-groups/{id}
func (h *SaleGroupsHandler) DeleteSaleGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSaleGroup(ctx, groupID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete sale group",
			slog.String("group_id", groupID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sale group deleted",
		slog.String("group_id", groupID.String()))

	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Sale group deleted successfully",
		"group_id": groupID.String(),
	})
}

func (h *SaleGroupsHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sale group ID format")
		return uuid.Nil, false
	}
	return id, true
}
