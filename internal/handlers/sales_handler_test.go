// internal/handlers/sales_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/internal/handlers"
	"github.com/mfigueroa/stockpos-be/test/helpers"
	"github.com/mfigueroa/stockpos-be/test/mocks"
)

func newSalesHandler(t *testing.T, ctrl *gomock.Controller) (*handlers.SalesHandler, *mocks.MockStockService, *mocks.MockStockReader) {
	t.Helper()

	mockService := mocks.NewMockStockService(ctrl)
	mockReader := mocks.NewMockStockReader(ctrl)

	testRedis := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(testRedis.Client, time.Hour, helpers.TestLogger())

	return handlers.NewSalesHandler(mockService, mockReader, cache, helpers.TestLogger()), mockService, mockReader
}

func TestSalesHandler_RecordSale(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successfully_records_sale",
			body: `{"item_id":"` + itemID.String() + `","quantity":"2","price":"19.99"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordSale(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, cmd ports.SaleCommand) (*domain.LedgerEntry, error) {
						assert.Equal(t, itemID, cmd.ItemID)
						assert.True(t, cmd.Quantity.Equal(decimal.NewFromInt(2)))
						return &domain.LedgerEntry{
							ID:        uuid.New(),
							ItemID:    itemID,
							Quantity:  cmd.Quantity,
							Price:     cmd.Price,
							CreatedAt: time.Now(),
						}, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid_request_body",
			body:           `{not json`,
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "insufficient_stock_maps_to_conflict",
			body: `{"item_id":"` + itemID.String() + `","quantity":"500","price":"19.99"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordSale(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewConflict(domain.CodeInsufficientStock,
						"insufficient retail stock for item %s", itemID))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   domain.CodeInsufficientStock,
		},
		{
			name: "unknown_item_maps_to_not_found",
			body: `{"item_id":"` + itemID.String() + `","quantity":"1","price":"19.99"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordSale(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewNotFound(domain.CodeItemNotFound, "item %s not found", itemID))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.CodeItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService, _ := newSalesHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("POST", "/api/v1/sales", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.RecordSale(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.expectedCode != "" {
				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedCode, response.Code)
			}
		})
	}
}

func TestSalesHandler_ReviseSale(t *testing.T) {
	entryID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name           string
		entryID        string
		body           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:    "successfully_revises_sale",
			entryID: entryID.String(),
			body:    `{"quantity":"5"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					ReviseSale(gomock.Any(), entryID, gomock.Any()).
					DoAndReturn(func(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (*domain.LedgerEntry, error) {
						assert.True(t, qty.Equal(decimal.NewFromInt(5)))
						return &domain.LedgerEntry{
							ID:        entryID,
							ItemID:    itemID,
							Quantity:  qty,
							Price:     decimal.NewFromInt(14),
							CreatedAt: time.Now(),
						}, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_entry_id_format",
			entryID:        "not-a-uuid",
			body:           `{"quantity":"5"}`,
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_request_body",
			entryID:        entryID.String(),
			body:           `{not json`,
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "unknown_entry_maps_to_not_found",
			entryID: entryID.String(),
			body:    `{"quantity":"5"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					ReviseSale(gomock.Any(), entryID, gomock.Any()).
					Return(nil, domain.NewNotFound(domain.CodeEntryNotFound,
						"ledger entry not found: %s", entryID))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.CodeEntryNotFound,
		},
		{
			name:    "correction_exceeding_stock_maps_to_conflict",
			entryID: entryID.String(),
			body:    `{"quantity":"500"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					ReviseSale(gomock.Any(), entryID, gomock.Any()).
					Return(nil, domain.NewConflict(domain.CodeInsufficientStock,
						"insufficient retail stock for item %s", itemID))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   domain.CodeInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService, _ := newSalesHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("PUT", "/api/v1/sales/"+tt.entryID, bytes.NewBufferString(tt.body))
			req.SetPathValue("id", tt.entryID)
			w := httptest.NewRecorder()

			handler.ReviseSale(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.expectedCode != "" {
				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedCode, response.Code)
			}
		})
	}
}

func TestSalesHandler_ListLedger(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockStockReader)
		expectedStatus int
	}{
		{
			name:  "applies_filters_and_pagination",
			query: "?page=2&limit=25&item_id=" + itemID.String() + "&losses_only=true&from=2026-08-01&to=2026-08-31",
			setupMocks: func(m *mocks.MockStockReader) {
				m.EXPECT().
					ListLedger(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
						assert.Equal(t, 2, params.Page)
						assert.Equal(t, 25, params.PageSize)
						require.NotNil(t, params.ItemID)
						assert.Equal(t, itemID, *params.ItemID)
						assert.True(t, params.LossesOnly)
						require.NotNil(t, params.From)
						require.NotNil(t, params.To)
						// The to filter covers the whole named day.
						assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *params.To)
						return []domain.LedgerEntry{}, 0, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_item_id_filter",
			query:          "?item_id=not-a-uuid",
			setupMocks:     func(m *mocks.MockStockReader) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_from_date",
			query:          "?from=08-01-2026",
			setupMocks:     func(m *mocks.MockStockReader) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, _, mockReader := newSalesHandler(t, ctrl)
			tt.setupMocks(mockReader)

			req := httptest.NewRequest("GET", "/api/v1/ledger"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ListLedger(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestSalesHandler_SaleStats(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, mockReader := newSalesHandler(t, ctrl)

	// Two identical requests hit the reader once; the second is cached.
	mockReader.EXPECT().
		SaleStats(gomock.Any(), from, to).
		Times(1).
		Return(&domain.SaleStats{
			From:      from,
			To:        to,
			SaleCount: 42,
			UnitsSold: decimal.NewFromInt(90),
			Revenue:   decimal.RequireFromString("1234.56"),
		}, nil)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/v1/stats/sales?from=2026-08-01&to=2026-08-31", nil)
		w := httptest.NewRecorder()

		handler.SaleStats(w, req)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)

		var stats domain.SaleStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, int64(42), stats.SaleCount)
		assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("1234.56")))
	}
}

func TestSalesHandler_SaleStats_InvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "malformed_from", query: "?from=yesterday"},
		{name: "malformed_to", query: "?to=2026/08/31"},
		{name: "from_after_to", query: "?from=2026-09-01&to=2026-08-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, _, _ := newSalesHandler(t, ctrl)

			req := httptest.NewRequest("GET", "/api/v1/stats/sales"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.SaleStats(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
		})
	}
}
