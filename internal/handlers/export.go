// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/adapters/storage"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/internal/workers"
)

// exportPageSize bounds the item pages pulled per export.
const exportPageSize = 500

// JSONExportResponse represents the JSON export response structure
type JSONExportResponse struct {
	Items    []*domain.Item `json:"items"`
	Metadata ExportMetadata `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate time.Time `json:"export_date"`
	TotalItems int       `json:"total_items"`
}

// ReportRequest schedules an async sales report.
type ReportRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ExportHandler handles catalog exports and async sales reports
type ExportHandler struct {
	reader        ports.StockReader
	cache         ports.CacheRepository
	asynqClient   *asynq.Client
	storage       storage.StorageClient
	defaultPeriod time.Duration
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(reader ports.StockReader, cache ports.CacheRepository, asynqClient *asynq.Client, store storage.StorageClient, defaultPeriod time.Duration, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		reader:        reader,
		cache:         cache,
		asynqClient:   asynqClient,
		storage:       store,
		defaultPeriod: defaultPeriod,
		logger:        logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.collectItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve items for export", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	excelData, err := h.generateExcelFile(items)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("stock_export_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("total_rows", len(items)),
		slog.String("filename", filename))
}

// ExportCSV handles GET /api/v1/export/csv
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.collectItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve items for export", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	header := []string{
		"id", "name", "sku", "description", "price",
		"total_amount", "reorder_level", "created_at", "updated_at",
	}
	if err := writer.Write(header); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate CSV")
		return
	}

	for _, item := range items {
		record := []string{
			item.ID.String(),
			item.Name,
			item.SKU,
			item.Description,
			item.Price.StringFixed(2),
			item.TotalAmount.String(),
			item.ReorderLevel.String(),
			item.CreatedAt.Format(time.RFC3339),
			item.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to generate CSV")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.ErrorContext(ctx, "failed to flush CSV export", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("stock_export_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(buffer.Bytes()); err != nil {
		h.logger.ErrorContext(ctx, "failed to write CSV response", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "CSV export completed",
		slog.Int("total_rows", len(items)),
		slog.String("filename", filename))
}

// ExportJSON handles GET /api/v1/export/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, "json", "catalog")
	var cachedData []byte
	if err := h.cache.Get(ctx, cacheKey, &cachedData); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Length", strconv.Itoa(len(cachedData)))

		if _, err := w.Write(cachedData); err != nil {
			h.logger.ErrorContext(ctx, "failed to write cached JSON response", slog.String("error", err.Error()))
		}
		return
	}

	items, err := h.collectItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve items for export", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	response := JSONExportResponse{
		Items: items,
		Metadata: ExportMetadata{
			ExportDate: time.Now(),
			TotalItems: len(items),
		},
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal JSON export", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to generate JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseData)))

	if _, err := w.Write(responseData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write JSON response", slog.String("error", err.Error()))
		return
	}

	// Cache the result async; the next export within the TTL is served hot.
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := h.cache.SetWithTTL(cacheCtx, cacheKey, responseData, 5*time.Minute); err != nil {
			h.logger.WarnContext(cacheCtx, "failed to cache JSON export", slog.String("error", err.Error()))
		}
	}()

	h.logger.InfoContext(ctx, "JSON export completed",
		slog.Int("total_rows", len(items)))
}

// ScheduleReport handles POST /api/v1/export/reports
func (h *ExportHandler) ScheduleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReportRequest
	if r.Body != nil {
		// An empty body falls back to the default reporting period.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	now := time.Now().UTC()
	from := now.Add(-h.defaultPeriod)
	to := now

	if req.From != "" {
		t, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if req.To != "" {
		t, err := time.Parse("2006-01-02", req.To)
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

	jobID := uuid.New().String()
	payload, err := json.Marshal(workers.ReportJobPayload{
		JobID: jobID,
		From:  from,
		To:    to,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create report job")
		return
	}

	task := asynq.NewTask(workers.TypeReportGenerate, payload)
	info, err := h.asynqClient.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue report task", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to schedule report")
		return
	}

	h.logger.InfoContext(ctx, "sales report scheduled",
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID),
		slog.Time("from", from),
		slog.Time("to", to))

	respondJSON(w, http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"status": "queued",
	})
}

// GetReport handles GET /api/v1/export/reports/{jobID}
func (h *ExportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := r.PathValue("jobID")

	if _, err := uuid.Parse(jobID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var result workers.ReportJobResult
	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, jobID)
	if err := h.cache.Get(ctx, cacheKey, &result); err != nil {
		respondJSON(w, http.StatusOK, map[string]string{
			"job_id": jobID,
			"status": "pending",
		})
		return
	}

	url, err := h.storage.GetPresignedURL(ctx, result.Key, 15*time.Minute)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to presign report URL",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to generate download URL")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"job_id":       jobID,
		"status":       "completed",
		"download_url": url,
		"entries":      result.Entries,
	})
}

// collectItems pages through the full catalog ordered by creation date.
func (h *ExportHandler) collectItems(ctx context.Context) ([]*domain.Item, error) {
	var items []*domain.Item

	for page := 1; ; page++ {
		result, err := h.reader.ListItems(ctx, ports.ItemListParams{
			SortBy:    "created_at",
			SortOrder: "desc",
			Page:      page,
			PageSize:  exportPageSize,
		})
		if err != nil {
			return nil, err
		}

		items = append(items, result.Items...)
		if len(result.Items) < exportPageSize || int64(len(items)) >= result.TotalCount {
			break
		}
	}

	return items, nil
}

func (h *ExportHandler) generateExcelFile(items []*domain.Item) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Stock")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{
		"ID", "Name", "SKU", "Description", "Price",
		"Total Amount", "Reorder Level", "Created At", "Updated At",
	}
	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().Value = item.ID.String()
		row.AddCell().Value = item.Name
		row.AddCell().Value = item.SKU
		row.AddCell().Value = item.Description
		row.AddCell().Value = item.Price.StringFixed(2)
		row.AddCell().Value = item.TotalAmount.String()
		row.AddCell().Value = item.ReorderLevel.String()
		row.AddCell().Value = item.CreatedAt.Format("2006-01-02 15:04:05")
		row.AddCell().Value = item.UpdatedAt.Format("2006-01-02 15:04:05")
	}

	for i := 0; i < len(headers); i++ {
		sheet.SetColWidth(i, i, 18)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}
