// internal/workers/report_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/adapters/storage"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// reportPageSize bounds the ledger pages pulled per report.
const reportPageSize = 500

// ReportProcessor builds sales report workbooks and uploads them to
// object storage. The upload location is cached under the job ID so the
// export handler can hand out a presigned URL.
type ReportProcessor struct {
	reader   ports.StockReader
	storage  storage.StorageClient
	cache    ports.CacheRepository
	s3Prefix string
	logger   *slog.Logger
}

// NewReportProcessor creates a new report processor
func NewReportProcessor(reader ports.StockReader, store storage.StorageClient, cache ports.CacheRepository, s3Prefix string, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		reader:   reader,
		storage:  store,
		cache:    cache,
		s3Prefix: s3Prefix,
		logger:   logger.With(slog.String("processor", "report")),
	}
}

// GenerateReport handles report:generate tasks.
func (p *ReportProcessor) GenerateReport(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ReportJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "generating sales report",
		slog.String("job_id", payload.JobID),
		slog.Time("from", payload.From),
		slog.Time("to", payload.To))

	stats, err := p.reader.SaleStats(ctx, payload.From, payload.To)
	if err != nil {
		return fmt.Errorf("failed to compute sale stats: %w", err)
	}

	entries, err := p.collectEntries(ctx, payload.From, payload.To)
	if err != nil {
		return fmt.Errorf("failed to collect ledger entries: %w", err)
	}

	workbook, err := p.buildWorkbook(stats, entries)
	if err != nil {
		return fmt.Errorf("failed to build report workbook: %w", err)
	}

	key := fmt.Sprintf("%s/sales_%s_%s_%s.xlsx",
		p.s3Prefix,
		payload.From.Format("20060102"),
		payload.To.Format("20060102"),
		payload.JobID)

	location, err := p.storage.Upload(ctx, key, bytes.NewReader(workbook),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}

	result := ReportJobResult{
		Key:            key,
		Location:       location,
		Entries:        len(entries),
		ProcessingTime: time.Since(start).String(),
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, payload.JobID)
	if err := p.cache.SetWithTTL(ctx, cacheKey, result, 24*time.Hour); err != nil {
		p.logger.WarnContext(ctx, "failed to cache report location",
			slog.String("job_id", payload.JobID),
			slog.String("error", err.Error()))
	}

	p.logger.InfoContext(ctx, "sales report generated",
		slog.String("job_id", payload.JobID),
		slog.String("key", key),
		slog.Int("entries", len(entries)),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// collectEntries pages through the ledger for the report window.
func (p *ReportProcessor) collectEntries(ctx context.Context, from, to time.Time) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry

	for page := 1; ; page++ {
		batch, total, err := p.reader.ListLedger(ctx, ports.LedgerListParams{
			From:     &from,
			To:       &to,
			Page:     page,
			PageSize: reportPageSize,
		})
		if err != nil {
			return nil, err
		}

		entries = append(entries, batch...)
		if len(batch) < reportPageSize || int64(len(entries)) >= total {
			break
		}
	}

	return entries, nil
}

func (p *ReportProcessor) buildWorkbook(stats *domain.SaleStats, entries []domain.LedgerEntry) ([]byte, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}

	summaryRows := [][2]string{
		{"Period From", stats.From.Format("2006-01-02")},
		{"Period To", stats.To.Format("2006-01-02")},
		{"Sales", fmt.Sprintf("%d", stats.SaleCount)},
		{"Units Sold", stats.UnitsSold.String()},
		{"Revenue", stats.Revenue.StringFixed(2)},
		{"Losses", fmt.Sprintf("%d", stats.LossCount)},
		{"Units Lost", stats.UnitsLost.String()},
	}
	for _, pair := range summaryRows {
		row := summary.AddRow()
		label := row.AddCell()
		label.Value = pair[0]
		label.GetStyle().Font.Bold = true
		row.AddCell().Value = pair[1]
	}
	summary.SetColWidth(0, 0, 18)
	summary.SetColWidth(1, 1, 15)

	detail, err := file.AddSheet("Ledger")
	if err != nil {
		return nil, fmt.Errorf("failed to add ledger sheet: %w", err)
	}

	headers := []string{"Date", "Item ID", "Group ID", "Quantity", "Price", "Revenue", "Type"}
	headerRow := detail.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for i := range entries {
		entry := &entries[i]
		row := detail.AddRow()
		row.AddCell().Value = entry.CreatedAt.Format("2006-01-02 15:04:05")
		row.AddCell().Value = entry.ItemID.String()
		if entry.GroupID != nil {
			row.AddCell().Value = entry.GroupID.String()
		} else {
			row.AddCell().Value = ""
		}
		row.AddCell().Value = entry.Quantity.String()
		row.AddCell().Value = entry.Price.StringFixed(2)
		row.AddCell().Value = entry.Revenue().StringFixed(2)
		if entry.IsLoss() {
			row.AddCell().Value = "loss"
		} else {
			row.AddCell().Value = "sale"
		}
	}

	for i := 0; i < len(headers); i++ {
		detail.SetColWidth(i, i, 20)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}
