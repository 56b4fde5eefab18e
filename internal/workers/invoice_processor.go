// internal/workers/invoice_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// InvoiceProcessor restocks items from supplier delivery invoices. Each
// invoice line names a SKU and the delivered quantity; parsed lines turn
// into restock operations against the stock engine.
type InvoiceProcessor struct {
	service ports.StockService
	reader  ports.StockReader
	logger  *slog.Logger
}

// NewInvoiceProcessor creates a new invoice processor
func NewInvoiceProcessor(service ports.StockService, reader ports.StockReader, logger *slog.Logger) *InvoiceProcessor {
	return &InvoiceProcessor{
		service: service,
		reader:  reader,
		logger:  logger.With(slog.String("processor", "invoice")),
	}
}

// ProcessInvoice processes a supplier invoice PDF and restocks delivered items
func (p *InvoiceProcessor) ProcessInvoice(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload InvoiceJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "processing supplier invoice",
		slog.String("job_id", payload.JobID),
		slog.String("file_path", payload.FilePath))

	lines, err := p.extractInvoiceLines(ctx, payload.FilePath)
	if err != nil {
		return fmt.Errorf("failed to extract invoice lines: %w", err)
	}

	result := InvoiceJobResult{LinesParsed: len(lines)}

	for _, line := range lines {
		item, err := p.reader.FindItemBySKU(ctx, line.SKU)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", line.SKU, err))
			continue
		}
		if item == nil {
			result.UnknownSKUs = append(result.UnknownSKUs, line.SKU)
			continue
		}

		if _, err := p.service.RestockItem(ctx, item.ID, line.Quantity); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", line.SKU, err))
			continue
		}
		result.ItemsRestocked++
	}

	result.ProcessingTime = time.Since(start).String()

	// Temp upload is consumed once
	if strings.HasPrefix(payload.FilePath, os.TempDir()) {
		_ = os.Remove(payload.FilePath)
	}

	p.logger.InfoContext(ctx, "invoice processing completed",
		slog.String("job_id", payload.JobID),
		slog.Int("lines_parsed", result.LinesParsed),
		slog.Int("items_restocked", result.ItemsRestocked),
		slog.Int("unknown_skus", len(result.UnknownSKUs)),
		slog.Int("errors", len(result.Errors)))

	if len(result.Errors) > 0 {
		return fmt.Errorf("invoice %s processed with %d errors", payload.JobID, len(result.Errors))
	}
	return nil
}

// InvoiceLine is one parsed delivery line.
type InvoiceLine struct {
	SKU      string
	Quantity decimal.Decimal
	Total    decimal.Decimal
}

func (p *InvoiceProcessor) extractInvoiceLines(ctx context.Context, filePath string) ([]InvoiceLine, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textLines []string
	totalPages := r.NumPage()

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.WarnContext(ctx, "failed to extract text from page",
				slog.Int("page", pageNum),
				slog.String("error", err.Error()))
			continue
		}

		textLines = append(textLines, strings.Split(text, "\n")...)
	}

	return ParseInvoiceLines(textLines), nil
}

// Invoice line patterns. A delivery line reads
//
//	CR-1A2B3C4D    12    $150.00
//
// where the trailing amount is optional.
var (
	invoiceHeaderRe = regexp.MustCompile(`(?i)(SKU.*QTY|ITEM.*QUANTITY)`)
	invoiceFooterRe = regexp.MustCompile(`(?i)(SUBTOTAL|TOTAL DUE|AMOUNT DUE|A payment of)`)
	invoiceLineRe   = regexp.MustCompile(`^([A-Z][A-Z0-9]*(?:-[A-Z0-9]+)+)\s+(\d+(?:\.\d+)?)(?:\s+\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}))?\s*$`)
)

// ParseInvoiceLines extracts delivery lines from invoice text.
func ParseInvoiceLines(lines []string) []InvoiceLine {
	startIdx := 0
	for i, line := range lines {
		if invoiceHeaderRe.MatchString(line) {
			startIdx = i + 1
			break
		}
	}

	var parsed []InvoiceLine
	for i := startIdx; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if invoiceFooterRe.MatchString(line) {
			break
		}

		m := invoiceLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		qty, err := decimal.NewFromString(m[2])
		if err != nil || !qty.IsPositive() {
			continue
		}

		entry := InvoiceLine{SKU: m[1], Quantity: qty}
		if m[3] != "" {
			entry.Total = parseCurrency(m[3])
		}
		parsed = append(parsed, entry)
	}

	return parsed
}

func parseCurrency(val string) decimal.Decimal {
	cleaned := strings.ReplaceAll(val, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
