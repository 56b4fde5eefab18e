// internal/workers/reorder_processor_test.go
package workers_test

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/workers"
	"github.com/mfigueroa/stockpos-be/test/helpers"
	"github.com/mfigueroa/stockpos-be/test/mocks"
)

func TestReorderProcessor_ScanReorderLevels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRedis := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(testRedis.Client, time.Hour, helpers.TestLogger())

	low := *helpers.CreateTestItem(func(i *domain.Item) {
		i.SKU = "LOW-001"
		i.TotalAmount = decimal.NewFromInt(2)
		i.ReorderLevel = decimal.NewFromInt(5)
	})

	mockReader := mocks.NewMockStockReader(ctrl)
	mockReader.EXPECT().
		ListItemsBelowReorder(gomock.Any()).
		Times(2).
		Return([]domain.Item{low}, nil)

	processor := workers.NewReorderProcessor(mockReader, cache, time.Hour, helpers.TestLogger())
	task := asynq.NewTask(workers.TypeReorderScan, nil)

	err := processor.ScanReorderLevels(context.Background(), task)
	require.NoError(t, err)

	key := redis_a.BuildKey(redis_a.PrefixReorder, low.ID.String())
	exists, err := cache.Exists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, exists, "expected reorder alert key to be set")

	// A second scan inside the TTL window must not re-flag the item.
	err = processor.ScanReorderLevels(context.Background(), task)
	require.NoError(t, err)
}
