// internal/handlers/items_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

func newItemsHandler(t *testing.T, ctrl *gomock.Controller) (*handlers.ItemsHandler, *mocks.MockStockService, *mocks.MockStockReader) {
	t.Helper()

	mockService := mocks.NewMockStockService(ctrl)
	mockReader := mocks.NewMockStockReader(ctrl)

	testRedis := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(testRedis.Client, time.Hour, helpers.TestLogger())

	return handlers.NewItemsHandler(mockService, mockReader, cache, helpers.TestLogger()), mockService, mockReader
}

func TestItemsHandler_CreateItem(t *testing.T) {
	testItem := helpers.CreateTestItem()

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "successfully_creates_item",
			body: `{"name":"Ceramic Mug","sku":"CR-1A2B","price":"12.50","total_amount":"40"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, cmd ports.CreateItemCommand) (*domain.Item, error) {
						assert.Equal(t, "Ceramic Mug", cmd.Name)
						assert.Equal(t, "CR-1A2B", cmd.SKU)
						return testItem, nil
					})
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var response domain.Item
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, testItem.ID, response.ID)
			},
		},
		{
			name:           "invalid_request_body",
			body:           `{not json`,
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation_error_maps_to_bad_request",
			body: `{"name":"","sku":"CR-1A2B"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewValidation(domain.CodeInvalidItem, "item name is required"))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, domain.CodeInvalidItem, response.Code)
			},
		},
		{
			name: "duplicate_sku_maps_to_conflict",
			body: `{"name":"Ceramic Mug","sku":"CR-1A2B"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewConflict(domain.CodeInvalidItem, "sku CR-1A2B already exists"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService, _ := newItemsHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("POST", "/api/v1/items", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.CreateItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestItemsHandler_GetItem(t *testing.T) {
	testItem := helpers.CreateTestItem()

	tests := []struct {
		name           string
		itemID         string
		setupMocks     func(*mocks.MockStockReader)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:   "successfully_retrieves_item",
			itemID: testItem.ID.String(),
			setupMocks: func(m *mocks.MockStockReader) {
				m.EXPECT().
					GetItem(gomock.Any(), testItem.ID).
					Return(testItem, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response domain.Item
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, testItem.ID, response.ID)
				assert.Equal(t, testItem.Name, response.Name)
			},
		},
		{
			name:           "invalid_uuid_format",
			itemID:         "not-a-uuid",
			setupMocks:     func(m *mocks.MockStockReader) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Invalid item ID format", response.Error)
			},
		},
		{
			name:   "item_not_found",
			itemID: uuid.New().String(),
			setupMocks: func(m *mocks.MockStockReader) {
				m.EXPECT().
					GetItem(gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body []byte) {
				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, domain.CodeItemNotFound, response.Code)
			},
		},
		{
			name:   "reader_error",
			itemID: testItem.ID.String(),
			setupMocks: func(m *mocks.MockStockReader) {
				m.EXPECT().
					GetItem(gomock.Any(), testItem.ID).
					Return(nil, errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, _, mockReader := newItemsHandler(t, ctrl)
			tt.setupMocks(mockReader)

			req := httptest.NewRequest("GET", "/api/v1/items/"+tt.itemID, nil)
			req.SetPathValue("id", tt.itemID)
			w := httptest.NewRecorder()

			handler.GetItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestItemsHandler_GetItem_ServesSecondReadFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testItem := helpers.CreateTestItem()
	handler, _, mockReader := newItemsHandler(t, ctrl)

	mockReader.EXPECT().
		GetItem(gomock.Any(), testItem.ID).
		Times(1).
		Return(testItem, nil)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/v1/items/"+testItem.ID.String(), nil)
		req.SetPathValue("id", testItem.ID.String())
		w := httptest.NewRecorder()

		handler.GetItem(w, req)
		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	}
}

func TestItemsHandler_ListItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, mockReader := newItemsHandler(t, ctrl)

	mockReader.EXPECT().
		ListItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params ports.ItemListParams) (*ports.ItemListResult, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 10, params.PageSize)
			assert.Equal(t, "mug", params.Search)
			assert.True(t, params.LowStock)
			assert.Equal(t, "name", params.SortBy)
			assert.Equal(t, "asc", params.SortOrder)
			return &ports.ItemListResult{
				Items:      []*domain.Item{helpers.CreateTestItem()},
				Page:       2,
				PageSize:   10,
				TotalCount: 11,
				TotalPages: 2,
			}, nil
		})

	req := httptest.NewRequest("GET", "/api/v1/items?page=2&limit=10&search=mug&low_stock=true&sort=name&order=asc", nil)
	w := httptest.NewRecorder()

	handler.ListItems(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	var response ports.ItemListResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(11), response.TotalCount)
	assert.Len(t, response.Items, 1)
}

func TestItemsHandler_RestockItem(t *testing.T) {
	testItem := helpers.CreateTestItem()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, mockService, _ := newItemsHandler(t, ctrl)

	mockService.EXPECT().
		RestockItem(gomock.Any(), testItem.ID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (*domain.Item, error) {
			assert.True(t, qty.Equal(decimal.NewFromInt(25)))
			return testItem, nil
		})

	req := httptest.NewRequest("POST", "/api/v1/items/"+testItem.ID.String()+"/restock",
		bytes.NewBufferString(`{"quantity":"25"}`))
	req.SetPathValue("id", testItem.ID.String())
	w := httptest.NewRecorder()

	handler.RestockItem(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestItemsHandler_SetAllocation(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successfully_sets_allocation",
			body: `{"quantity":"10"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					SetAllocation(gomock.Any(), itemID, gomock.Any()).
					Return(helpers.CreateTestAllocation(itemID, decimal.NewFromInt(10)), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "allocation_exceeding_stock_maps_to_conflict",
			body: `{"quantity":"999"}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					SetAllocation(gomock.Any(), itemID, gomock.Any()).
					Return(nil, domain.NewConflict(domain.CodeRetailExceedsTotal,
						"retail allocation exceeds total stock"))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   domain.CodeRetailExceedsTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService, _ := newItemsHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("PUT", "/api/v1/items/"+itemID.String()+"/allocation",
				bytes.NewBufferString(tt.body))
			req.SetPathValue("id", itemID.String())
			w := httptest.NewRecorder()

			handler.SetAllocation(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.expectedCode != "" {
				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedCode, response.Code)
			}
		})
	}
}

func TestItemsHandler_DeleteItem(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
	}{
		{
			name: "successfully_deletes_item",
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RemoveItem(gomock.Any(), itemID).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "item_not_found",
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RemoveItem(gomock.Any(), itemID).
					Return(domain.NewNotFound(domain.CodeItemNotFound, "item %s not found", itemID))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService, _ := newItemsHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("DELETE", "/api/v1/items/"+itemID.String(), nil)
			req.SetPathValue("id", itemID.String())
			w := httptest.NewRecorder()

			handler.DeleteItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
		})
	}
}
