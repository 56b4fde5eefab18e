// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/mfigueroa/stockpos-be/internal/adapters/memstore"
	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/internal/core/services"
)

func benchLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// createBenchmarkService wires the transaction engine against the in-memory
// store and a local Redis, so benchmarks measure engine overhead rather
// than network round trips.
func createBenchmarkService() (ports.StockService, *memstore.Store, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(fmt.Sprintf("failed to start miniredis: %v", err))
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := redis_a.NewCache(client, time.Minute, benchLogger())

	store := memstore.New()
	service := services.NewStockService(store, cache, benchLogger())

	cleanup := func() {
		client.Close()
		mr.Close()
	}
	return service, store, cleanup
}

var seedCounter int

// seedBenchItem creates one well-stocked item with its whole total on
// retail display, so sale benchmarks never hit the allocation guard.
func seedBenchItem(service ports.StockService, total int64) *domain.Item {
	seedCounter++
	retail := decimal.NewFromInt(total)
	item, err := service.CreateItem(context.Background(), ports.CreateItemCommand{
		Name:           "Bench Item",
		SKU:            fmt.Sprintf("BS-%07d", seedCounter),
		Price:          decimal.RequireFromString("9.99"),
		TotalAmount:    decimal.NewFromInt(total),
		RetailQuantity: &retail,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to seed bench item: %v", err))
	}
	return item
}

// createInvoiceText builds a plausible supplier invoice body with the
// given number of delivery lines.
func createInvoiceText(numLines int) []string {
	lines := make([]string, 0, numLines+4)
	lines = append(lines,
		"ACME WHOLESALE SUPPLY",
		"INVOICE #88123",
		"SKU          QTY     AMOUNT",
	)

	for i := 0; i < numLines; i++ {
		lines = append(lines, fmt.Sprintf("CR-%07d    %d    $%d.00", i, 1+i%12, 10+i%90))
	}

	lines = append(lines, "SUBTOTAL    $12,345.00")
	return lines
}
