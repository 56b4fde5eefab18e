// internal/workers/report_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/adapters/storage"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/internal/workers"
	"github.com/mfigueroa/stockpos-be/test/helpers"
	"github.com/mfigueroa/stockpos-be/test/mocks"
)

func TestReportProcessor_GenerateReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRedis := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(testRedis.Client, time.Hour, helpers.TestLogger())
	store := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	itemID := uuid.New()
	groupID := uuid.New()
	entries := []domain.LedgerEntry{
		{
			ID:        uuid.New(),
			ItemID:    itemID,
			GroupID:   &groupID,
			Quantity:  decimal.NewFromInt(2),
			Price:     decimal.RequireFromString("19.99"),
			CreatedAt: from.Add(24 * time.Hour),
		},
		{
			ID:        uuid.New(),
			ItemID:    itemID,
			Quantity:  decimal.NewFromInt(1),
			Price:     decimal.Zero,
			CreatedAt: from.Add(48 * time.Hour),
		},
	}

	mockReader := mocks.NewMockStockReader(ctrl)
	mockReader.EXPECT().
		SaleStats(gomock.Any(), from, to).
		Return(&domain.SaleStats{
			From:      from,
			To:        to,
			SaleCount: 1,
			UnitsSold: decimal.NewFromInt(2),
			Revenue:   decimal.RequireFromString("39.98"),
			LossCount: 1,
			UnitsLost: decimal.NewFromInt(1),
		}, nil)
	mockReader.EXPECT().
		ListLedger(gomock.Any(), gomock.AssignableToTypeOf(ports.LedgerListParams{})).
		Return(entries, int64(len(entries)), nil)

	processor := workers.NewReportProcessor(mockReader, store, cache, "reports/sales", helpers.TestLogger())

	payload := workers.ReportJobPayload{
		JobID: uuid.New().String(),
		From:  from,
		To:    to,
	}
	payloadBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	task := asynq.NewTask(workers.TypeReportGenerate, payloadBytes)
	err = processor.GenerateReport(context.Background(), task)
	require.NoError(t, err)

	// The result must be cached under the job ID for the export handler.
	var result workers.ReportJobResult
	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, payload.JobID)
	require.NoError(t, cache.Get(context.Background(), cacheKey, &result))
	assert.Equal(t, 2, result.Entries)
	assert.Contains(t, result.Key, "reports/sales/sales_20260801_20260901_")

	// The uploaded workbook must open and carry both sheets.
	data, err := store.Download(context.Background(), result.Key)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Equal(t, "Summary", file.Sheets[0].Name)
	assert.Equal(t, "Ledger", file.Sheets[1].Name)
	assert.Equal(t, 3, file.Sheets[1].MaxRow)
}

func TestCleanupProcessor_CleanupTempFiles(t *testing.T) {
	dir := t.TempDir()

	stale := helpers.CreateTempFileIn(t, dir, []byte("old upload"), ".pdf")
	fresh := helpers.CreateTempFileIn(t, dir, []byte("new upload"), ".pdf")
	helpers.SetFileModTime(t, stale, time.Now().Add(-48*time.Hour))

	processor := workers.NewCleanupProcessor(dir, 24*time.Hour, helpers.TestLogger())
	task := asynq.NewTask(workers.TypeCleanupTempFiles, nil)

	err := processor.CleanupTempFiles(context.Background(), task)
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}
