package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/mfigueroa/stockpos-be/internal/workers"
)

// CatalogItem is a single row of the spreadsheet catalog.
type CatalogItem struct {
	ID             uuid.UUID
	Name           string
	SKU            string
	Description    string
	Price          decimal.Decimal
	TotalAmount    decimal.Decimal
	ReorderLevel   decimal.Decimal
	RetailQuantity decimal.Decimal
}

// Seeder loads a catalog spreadsheet and delivery invoices into the database.
type Seeder struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewSeeder(db *pgxpool.Pool, logger *slog.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

// LoadCatalog reads items from the first sheet of an Excel workbook.
// Expected columns: Name, SKU, Description, Price, Total Amount,
// Reorder Level, Retail Quantity. The first row is a header.
func (s *Seeder) LoadCatalog(path string) ([]CatalogItem, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in catalog file")
	}
	sheet := file.Sheets[0]

	var items []CatalogItem
	rowIdx := 0
	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		// Skip header
		if rowIdx == 0 {
			rowIdx++
			return nil
		}
		rowIdx++

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			if v, err := c.FormattedValue(); err == nil {
				return strings.TrimSpace(v)
			}
			return strings.TrimSpace(c.String())
		}

		name := get(0)
		if name == "" {
			return nil
		}

		item := CatalogItem{
			ID:             uuid.New(),
			Name:           name,
			SKU:            strings.ToUpper(get(1)),
			Description:    get(2),
			Price:          parseAmount(get(3)),
			TotalAmount:    parseAmount(get(4)),
			ReorderLevel:   parseAmount(get(5)),
			RetailQuantity: parseAmount(get(6)),
		}

		if item.Price.IsNegative() || item.TotalAmount.IsNegative() {
			s.logger.Warn("Skipping catalog row with negative amounts",
				slog.Int("row", rowIdx),
				slog.String("name", item.Name))
			return nil
		}
		if item.RetailQuantity.GreaterThan(item.TotalAmount) {
			s.logger.Warn("Clamping retail quantity to total amount",
				slog.String("sku", item.SKU),
				slog.String("retail", item.RetailQuantity.String()),
				slog.String("total", item.TotalAmount.String()))
			item.RetailQuantity = item.TotalAmount
		}

		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate catalog rows: %w", err)
	}

	s.logger.Info("Loaded catalog", slog.Int("count", len(items)))
	return items, nil
}

// SaveItems persists catalog items and their retail allocations. Items
// whose SKU already exists are left untouched; allocations resolve the
// item by SKU so reruns are safe.
func (s *Seeder) SaveItems(ctx context.Context, items []CatalogItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	queued := 0

	for _, item := range items {
		batch.Queue(`
			INSERT INTO items (
				id, name, sku, description, price, total_amount, reorder_level
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7
			) ON CONFLICT (sku) WHERE sku <> '' DO NOTHING`,
			item.ID, item.Name, item.SKU, item.Description,
			item.Price, item.TotalAmount, item.ReorderLevel,
		)
		queued++

		if item.RetailQuantity.IsPositive() && item.SKU != "" {
			batch.Queue(`
				INSERT INTO retail_allocations (id, item_id, quantity)
				SELECT $1, id, $2 FROM items WHERE sku = $3
				ON CONFLICT (item_id) DO NOTHING`,
				uuid.New(), item.RetailQuantity, item.SKU,
			)
			queued++
		}
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert catalog row: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Saved catalog items", slog.Int("count", len(items)))
	return nil
}

// ExtractDeliveryLines pulls restock lines out of a supplier invoice PDF.
func (s *Seeder) ExtractDeliveryLines(path string) ([]workers.InvoiceLine, error) {
	f, r, err := pdf.Open(path)
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
			s.logger.Warn("Failed to extract text from page",
				slog.String("file", path),
				slog.Int("page", pageNum),
				slog.String("error", err.Error()))
			continue
		}

		textLines = append(textLines, strings.Split(text, "\n")...)
	}

	return workers.ParseInvoiceLines(textLines), nil
}

// ApplyDelivery increments total_amount for each delivery line. Lines
// whose SKU does not match a catalog item are returned as unknown.
func (s *Seeder) ApplyDelivery(ctx context.Context, lines []workers.InvoiceLine) (applied int, unknown []string, err error) {
	if len(lines) == 0 {
		return 0, nil, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			UPDATE items
			SET total_amount = total_amount + $1, updated_at = NOW()
			WHERE sku = $2`,
			line.Quantity, line.SKU,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for _, line := range lines {
		tag, execErr := br.Exec()
		if execErr != nil {
			br.Close()
			return 0, nil, fmt.Errorf("failed to apply delivery line %s: %w", line.SKU, execErr)
		}
		if tag.RowsAffected() == 0 {
			unknown = append(unknown, line.SKU)
			continue
		}
		applied++
	}
	if err := br.Close(); err != nil {
		return 0, nil, fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return applied, unknown, nil
}

func parseAmount(val string) decimal.Decimal {
	cleaned := strings.ReplaceAll(val, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}

	result, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return result
}

func main() {
	var (
		catalogFile = flag.String("catalog", "./catalog.xlsx", "Excel file with the item catalog")
		invoicesDir = flag.String("invoices", "./invoices", "Directory containing supplier invoice PDFs")
		stateFile   = flag.String("state", "./.seed_state.json", "State file for tracking progress")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun      = flag.Bool("dry-run", false, "Preview changes without modifying database")
		force       = flag.Bool("force", false, "Reprocess all invoices")
	)
	flag.Parse()

	var slogLevel slog.Level
	switch *logLevel {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(logger)

	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "stockpos"),
		getEnv("DB_PASSWORD", "stockpos_dev_2026"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "stockpos"),
		getEnv("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()

	var db *pgxpool.Pool
	var err error

	if !*dryRun {
		db, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Error("Failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
	}

	seeder := NewSeeder(db, logger)

	// Catalog first: deliveries restock items the catalog created.
	catalogCount := 0
	if _, err := os.Stat(*catalogFile); err == nil {
		items, err := seeder.LoadCatalog(*catalogFile)
		if err != nil {
			logger.Error("Failed to load catalog", slog.String("error", err.Error()))
			os.Exit(1)
		}
		catalogCount = len(items)

		if !*dryRun {
			if err := seeder.SaveItems(ctx, items); err != nil {
				logger.Error("Failed to save catalog items", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	} else {
		logger.Warn("Catalog file not found, skipping",
			slog.String("file", *catalogFile))
	}

	type SeederState struct {
		ProcessedInvoices []string  `json:"processed_invoices"`
		ProcessedCount    int       `json:"processed_count"`
		LastUpdate        time.Time `json:"last_update"`
	}

	var state SeederState
	if !*force {
		if stateData, err := os.ReadFile(*stateFile); err == nil {
			json.Unmarshal(stateData, &state)
		}
	}

	pdfFiles, err := filepath.Glob(filepath.Join(*invoicesDir, "*.pdf"))
	if err != nil {
		logger.Error("Failed to find PDF files", slog.String("error", err.Error()))
		os.Exit(1)
	}

	totalProcessed := 0
	totalLines := 0
	failedInvoices := []string{}
	unknownSKUs := map[string]bool{}

	for i, pdfFile := range pdfFiles {
		invoiceID := strings.TrimSuffix(filepath.Base(pdfFile), ".pdf")

		fmt.Printf("PROGRESS: Processing %d/%d: %s\n", i+1, len(pdfFiles), invoiceID)

		if !*force {
			processed := false
			for _, pid := range state.ProcessedInvoices {
				if pid == invoiceID {
					processed = true
					break
				}
			}
			if processed {
				logger.Info("Skipping already processed invoice", slog.String("invoice_id", invoiceID))
				continue
			}
		}

		lines, err := seeder.ExtractDeliveryLines(pdfFile)
		if err != nil {
			logger.Error("Failed to extract delivery lines",
				slog.String("invoice_id", invoiceID),
				slog.String("error", err.Error()))
			failedInvoices = append(failedInvoices, invoiceID)
			fmt.Printf("ERROR: Failed to process invoice_id:%s - %v\n", invoiceID, err)
			continue
		}

		if len(lines) == 0 {
			logger.Warn("No delivery lines extracted",
				slog.String("invoice_id", invoiceID))
			fmt.Printf("WARNING: No lines found in invoice_id:%s\n", invoiceID)
			failedInvoices = append(failedInvoices, fmt.Sprintf("%s (0 lines)", invoiceID))
			continue
		}

		applied := len(lines)
		if !*dryRun {
			var unknown []string
			applied, unknown, err = seeder.ApplyDelivery(ctx, lines)
			if err != nil {
				logger.Error("Failed to apply delivery",
					slog.String("invoice_id", invoiceID),
					slog.String("error", err.Error()))
				failedInvoices = append(failedInvoices, invoiceID)
				fmt.Printf("ERROR: Failed to apply invoice_id:%s - %v\n", invoiceID, err)
				continue
			}
			for _, sku := range unknown {
				unknownSKUs[sku] = true
			}
		}

		fmt.Printf("SUCCESS: Processed invoice_id:%s - %d lines applied\n", invoiceID, applied)

		totalProcessed++
		totalLines += applied

		state.ProcessedInvoices = append(state.ProcessedInvoices, invoiceID)
		state.ProcessedCount = len(state.ProcessedInvoices)
		state.LastUpdate = time.Now()

		if !*dryRun && i%10 == 0 {
			stateData, _ := json.MarshalIndent(state, "", "  ")
			os.WriteFile(*stateFile, stateData, 0644)
		}
	}

	if !*dryRun {
		stateData, _ := json.MarshalIndent(state, "", "  ")
		os.WriteFile(*stateFile, stateData, 0644)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING OPERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Catalog Items Loaded: %d\n", catalogCount)
	fmt.Printf("Invoices Processed: %d\n", totalProcessed)
	fmt.Printf("Delivery Lines Applied: %d\n", totalLines)

	if len(unknownSKUs) > 0 {
		fmt.Printf("\nUnknown SKUs (%d):\n", len(unknownSKUs))
		for sku := range unknownSKUs {
			fmt.Printf("  - %s\n", sku)
		}
	}

	if len(failedInvoices) > 0 {
		fmt.Printf("\nFailed/Empty Invoices (%d):\n", len(failedInvoices))
		for _, inv := range failedInvoices {
			fmt.Printf("  - %s\n", inv)
		}
	}

	logger.Info("Seed operation completed",
		slog.Int("catalog_items", catalogCount),
		slog.Int("invoices_processed", totalProcessed),
		slog.Int("lines_applied", totalLines),
		slog.Int("failed_invoices", len(failedInvoices)))

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
