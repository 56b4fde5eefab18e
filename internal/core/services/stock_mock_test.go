// internal/core/services/stock_mock_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfigueroa/stockpos-be/internal/adapters/memstore"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/test/helpers"
	"github.com/mfigueroa/stockpos-be/test/mocks"
)

func TestStockService_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStockStore(ctrl)
	store.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("pool exhausted"))

	svc := NewStockService(store, nil, helpers.TestLogger())

	_, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   uuid.New(),
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindStoreFailure, domain.KindOf(err))
}

func TestStockService_CommitFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	itemID := uuid.New()
	item := &domain.Item{
		ID:          itemID,
		Name:        "Widget",
		SKU:         "WID-1",
		Price:       decimal.NewFromInt(10),
		TotalAmount: decimal.NewFromInt(5),
	}
	alloc := &domain.RetailAllocation{
		ID:       uuid.New(),
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(5),
	}

	store := mocks.NewMockStockStore(ctrl)
	tx := mocks.NewMockStockTx(ctrl)

	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetItem(gomock.Any(), itemID).Return(item, nil)
	tx.EXPECT().GetAllocationByItem(gomock.Any(), itemID).Return(alloc, nil)
	tx.EXPECT().AppendLedgerEntry(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().UpdateAllocation(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	tx.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	tx.EXPECT().Commit(gomock.Any()).Return(errors.New("connection reset"))
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	svc := NewStockService(store, nil, helpers.TestLogger())

	_, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(2),
		Price:    decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindStoreFailure, domain.KindOf(err))
}

func TestStockService_PanicInTxRollsBackAndPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStockStore(ctrl)
	tx := mocks.NewMockStockTx(ctrl)
	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	svc := NewStockService(store, nil, helpers.TestLogger())

	assert.Panics(t, func() {
		_ = svc.inTx(context.Background(), func(ports.StockTx) error {
			panic("callback blew up")
		})
	})
}

func TestStockService_PanicInTxDoesNotWedgeStore(t *testing.T) {
	store := memstore.New()
	svc := NewStockService(store, nil, helpers.TestLogger())
	before := store.Snapshot()

	require.Panics(t, func() {
		_ = svc.inTx(context.Background(), func(ports.StockTx) error {
			panic("callback blew up")
		})
	})

	// The store takes new transactions afterwards and holds its pre-panic
	// records; without the rollback, Begin would block forever here.
	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(context.Background()))
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_DomainErrorRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	itemID := uuid.New()

	store := mocks.NewMockStockStore(ctrl)
	tx := mocks.NewMockStockTx(ctrl)

	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetItem(gomock.Any(), itemID).Return(nil, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	svc := NewStockService(store, nil, helpers.TestLogger())

	_, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, domain.CodeItemNotFound, domain.CodeOf(err))
}
