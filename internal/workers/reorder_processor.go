// internal/workers/reorder_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// ReorderProcessor scans for items whose stock fell to or below their
// reorder level and raises a deduplicated alert per item.
type ReorderProcessor struct {
	reader   ports.StockReader
	cache    ports.CacheRepository
	alertTTL time.Duration
	logger   *slog.Logger
}

// NewReorderProcessor creates a new reorder scanner
func NewReorderProcessor(reader ports.StockReader, cache ports.CacheRepository, alertTTL time.Duration, logger *slog.Logger) *ReorderProcessor {
	return &ReorderProcessor{
		reader:   reader,
		cache:    cache,
		alertTTL: alertTTL,
		logger:   logger.With(slog.String("processor", "reorder")),
	}
}

// ScanReorderLevels handles reorder:scan tasks.
func (p *ReorderProcessor) ScanReorderLevels(ctx context.Context, t *asynq.Task) error {
	items, err := p.reader.ListItemsBelowReorder(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items below reorder level: %w", err)
	}

	flagged := 0
	for i := range items {
		item := &items[i]

		// SetNX keeps one alert per item per TTL window.
		key := redis_a.BuildKey(redis_a.PrefixReorder, item.ID.String())
		fresh, err := p.cache.SetNX(ctx, key, item.TotalAmount.String(), p.alertTTL)
		if err != nil {
			p.logger.WarnContext(ctx, "failed to record reorder alert",
				slog.String("item_id", item.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if !fresh {
			continue
		}

		flagged++
		p.logger.WarnContext(ctx, "item at or below reorder level",
			slog.String("item_id", item.ID.String()),
			slog.String("sku", item.SKU),
			slog.String("name", item.Name),
			slog.String("total_amount", item.TotalAmount.String()),
			slog.String("reorder_level", item.ReorderLevel.String()))
	}

	p.logger.InfoContext(ctx, "reorder scan completed",
		slog.Int("below_reorder", len(items)),
		slog.Int("newly_flagged", flagged))

	return nil
}
