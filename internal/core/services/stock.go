// internal/core/services/stock.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/internal/pkg/keymutex"
)

// StockService coordinates the stock transaction engine. Each operation is
// one atomic unit over the StockStore: it computes deltas, checks the
// allocation invariant, writes the ledger, and rolls everything back on any
// failure. Operations on the same item are serialized; unrelated items run
// in parallel.
type StockService struct {
	store  ports.StockStore
	cache  ports.CacheRepository
	locks  *keymutex.KeyMutex
	logger *slog.Logger
	now    func() time.Time
}

// Statically assert that *StockService implements the StockService interface.
var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a new stock service. cache may be nil; it is only
// used to invalidate read-side entries after commits.
func NewStockService(store ports.StockStore, cache ports.CacheRepository, logger *slog.Logger) *StockService {
	return &StockService{
		store:  store,
		cache:  cache,
		locks:  keymutex.New(),
		logger: logger.With(slog.String("service", "stock")),
		now:    time.Now,
	}
}

// CreateItem creates an item and, when a retail quantity is supplied, its
// initial allocation. The initial allocation must fit the initial total.
func (s *StockService) CreateItem(ctx context.Context, cmd ports.CreateItemCommand) (*domain.Item, error) {
	item := &domain.Item{
		Name:         cmd.Name,
		SKU:          cmd.SKU,
		Description:  cmd.Description,
		TypeID:       cmd.TypeID,
		Price:        cmd.Price,
		TotalAmount:  cmd.TotalAmount,
		ReorderLevel: cmd.ReorderLevel,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if cmd.RetailQuantity != nil {
		if cmd.RetailQuantity.IsNegative() {
			return nil, domain.NewValidation(domain.CodeInvalidAllocation, "retail quantity cannot be negative")
		}
		if err := domain.ValidateAllocation(cmd.TotalAmount, *cmd.RetailQuantity); err != nil {
			return nil, err
		}
	}
	item.PrepareForStorage()

	err := s.inTx(ctx, func(tx ports.StockTx) error {
		if err := s.checkItemType(ctx, tx, cmd.TypeID); err != nil {
			return err
		}
		if err := tx.CreateItem(ctx, item); err != nil {
			return domain.NewStoreFailure("failed to create item", err)
		}
		if cmd.RetailQuantity == nil {
			return nil
		}
		alloc := &domain.RetailAllocation{ItemID: item.ID, Quantity: *cmd.RetailQuantity}
		alloc.PrepareForStorage()
		if err := tx.CreateAllocation(ctx, alloc); err != nil {
			return domain.NewStoreFailure("failed to create retail allocation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item created",
		slog.String("item_id", item.ID.String()),
		slog.String("sku", item.SKU))

	return item, nil
}

// RecordSale appends a ledger entry and decrements both the retail
// allocation and the item total by the sold quantity.
func (s *StockService) RecordSale(ctx context.Context, cmd ports.SaleCommand) (*domain.LedgerEntry, error) {
	if err := validateSale(cmd); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(cmd.ItemID)
	defer unlock()

	var entry *domain.LedgerEntry
	err := s.inTx(ctx, func(tx ports.StockTx) error {
		var err error
		entry, err = s.applySale(ctx, tx, cmd, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cmd.ItemID)
	s.logger.InfoContext(ctx, "sale recorded",
		slog.String("entry_id", entry.ID.String()),
		slog.String("item_id", cmd.ItemID.String()),
		slog.String("quantity", cmd.Quantity.String()))

	return entry, nil
}

// ReviseSale corrects a recorded sale by replacing the entry's quantity.
// The stock delta is re-derived from the correction: allocation and total
// both move by the difference between the new and old quantity, so the
// records afterwards read as if the corrected quantity had been sold in the
// first place.
func (s *StockService) ReviseSale(ctx context.Context, entryID uuid.UUID, quantity decimal.Decimal) (*domain.LedgerEntry, error) {
	if entryID == uuid.Nil {
		return nil, domain.NewValidation(domain.CodeInvalidSale, "entry_id is required")
	}
	if !quantity.IsPositive() {
		return nil, domain.NewValidation(domain.CodeInvalidSale, "quantity must be positive")
	}

	// Resolve which item owns the entry, then serialize with every other
	// write to that item. The entry is re-read under the lock.
	itemID, err := s.entryItemID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(itemID)
	defer unlock()

	var entry *domain.LedgerEntry
	err = s.inTx(ctx, func(tx ports.StockTx) error {
		var err error
		entry, err = tx.GetLedgerEntry(ctx, entryID)
		if err != nil {
			return domain.NewStoreFailure("failed to load ledger entry", err)
		}
		if entry == nil {
			return domain.NewNotFound(domain.CodeEntryNotFound, "ledger entry not found: %s", entryID)
		}
		if entry.IsLoss() {
			return domain.NewConflict(domain.CodeInvalidSale,
				"entry %s records a loss, not a sale", entryID)
		}

		delta := quantity.Sub(entry.Quantity)
		if delta.IsZero() {
			return nil
		}

		item, err := tx.GetItem(ctx, entry.ItemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load item", err)
		}
		if item == nil {
			return domain.NewNotFound(domain.CodeItemNotFound, "item not found: %s", entry.ItemID)
		}
		alloc, err := tx.GetAllocationByItem(ctx, entry.ItemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load retail allocation", err)
		}
		if alloc == nil {
			return domain.NewNotFound(domain.CodeAllocationNotFound, "no retail allocation for item: %s", entry.ItemID)
		}

		alloc.Quantity = alloc.Quantity.Sub(delta)
		if alloc.Quantity.IsNegative() {
			return domain.NewConflict(domain.CodeInsufficientStock,
				"insufficient retail stock for item %s: correction needs %s more", entry.ItemID, delta)
		}
		item.TotalAmount = item.TotalAmount.Sub(delta)
		if item.TotalAmount.IsNegative() {
			return domain.NewConflict(domain.CodeInsufficientStock,
				"item %s total would go negative", entry.ItemID)
		}

		entry.Quantity = quantity
		if n, err := tx.UpdateLedgerEntry(ctx, entry); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update ledger entry", err)
		}
		alloc.UpdatedAt = s.now().UTC()
		if n, err := tx.UpdateAllocation(ctx, alloc); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update retail allocation", err)
		}
		item.UpdatedAt = s.now().UTC()
		if n, err := tx.UpdateItem(ctx, item); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update item", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, itemID)
	s.logger.InfoContext(ctx, "sale revised",
		slog.String("entry_id", entryID.String()),
		slog.String("item_id", itemID.String()),
		slog.String("quantity", quantity.String()))

	return entry, nil
}

// entryItemID looks up the item a ledger entry belongs to.
func (s *StockService) entryItemID(ctx context.Context, entryID uuid.UUID) (uuid.UUID, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return uuid.Nil, domain.NewStoreFailure("failed to begin stock transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.ErrorContext(ctx, "rollback failed",
				slog.String("error", rbErr.Error()))
		}
	}()

	entry, err := tx.GetLedgerEntry(ctx, entryID)
	if err != nil {
		return uuid.Nil, domain.NewStoreFailure("failed to load ledger entry", err)
	}
	if entry == nil {
		return uuid.Nil, domain.NewNotFound(domain.CodeEntryNotFound, "ledger entry not found: %s", entryID)
	}
	return entry.ItemID, nil
}

// RecordSaleGroup creates a sale group and applies every line in input
// order. Either every line registers or none do.
func (s *StockService) RecordSaleGroup(ctx context.Context, cmd ports.SaleGroupCommand) (*domain.SaleGroup, error) {
	if len(cmd.Lines) == 0 {
		return nil, domain.NewValidation(domain.CodeInvalidSaleGroup, "sale group requires at least one line")
	}
	if cmd.TotalAmount.IsNegative() {
		return nil, domain.NewValidation(domain.CodeInvalidSaleGroup, "total_amount cannot be negative")
	}
	itemIDs := make([]uuid.UUID, 0, len(cmd.Lines))
	for i, line := range cmd.Lines {
		if err := validateSale(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		itemIDs = append(itemIDs, line.ItemID)
	}

	unlock := s.locks.LockAll(itemIDs)
	defer unlock()

	group := &domain.SaleGroup{
		ID:            uuid.New(),
		CustomerName:  cmd.CustomerName,
		PaymentMethod: cmd.PaymentMethod,
		TotalAmount:   cmd.TotalAmount,
		CreatedAt:     s.now().UTC(),
	}

	err := s.inTx(ctx, func(tx ports.StockTx) error {
		if err := tx.CreateSaleGroup(ctx, group); err != nil {
			return domain.NewStoreFailure("failed to create sale group", err)
		}
		for i, line := range cmd.Lines {
			if _, err := s.applySale(ctx, tx, line, &group.ID); err != nil {
				return fmt.Errorf("line %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range itemIDs {
		s.invalidate(ctx, id)
	}
	s.logger.InfoContext(ctx, "sale group recorded",
		slog.String("group_id", group.ID.String()),
		slog.Int("lines", len(cmd.Lines)))

	return group, nil
}

// ReviseItem applies an item edit. Loss recording and explicit retail
// reallocation are independent concerns: the loss entry documents how much
// the total shrank, the explicit retail quantity retargets the display
// allocation, and absent an explicit value a stale allocation is clamped to
// the new total.
func (s *StockService) ReviseItem(ctx context.Context, cmd ports.ReviseItemCommand) (*domain.Item, error) {
	if cmd.ItemID == uuid.Nil {
		return nil, domain.NewValidation(domain.CodeInvalidItem, "item_id is required")
	}
	if cmd.RetailQuantity != nil {
		if cmd.RetailQuantity.IsNegative() {
			return nil, domain.NewValidation(domain.CodeInvalidAllocation, "retail quantity cannot be negative")
		}
		if err := domain.ValidateAllocation(cmd.TotalAmount, *cmd.RetailQuantity); err != nil {
			return nil, err
		}
	}

	unlock := s.locks.Lock(cmd.ItemID)
	defer unlock()

	var item *domain.Item
	err := s.inTx(ctx, func(tx ports.StockTx) error {
		var err error
		item, err = tx.GetItem(ctx, cmd.ItemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load item", err)
		}
		if item == nil {
			return domain.NewNotFound(domain.CodeItemNotFound, "item not found: %s", cmd.ItemID)
		}
		if err := s.checkItemType(ctx, tx, cmd.TypeID); err != nil {
			return err
		}
		oldTotal := item.TotalAmount

		item.Name = cmd.Name
		item.SKU = cmd.SKU
		item.Description = cmd.Description
		item.TypeID = cmd.TypeID
		item.Price = cmd.Price
		item.TotalAmount = cmd.TotalAmount
		item.ReorderLevel = cmd.ReorderLevel
		if err := item.Validate(); err != nil {
			return err
		}
		item.UpdatedAt = s.now().UTC()

		if n, err := tx.UpdateItem(ctx, item); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update item", err)
		}

		// The new total is applied exactly once; the loss entry is a
		// record of the reduction, not a further decrement.
		if cmd.RecordLoss && oldTotal.GreaterThan(cmd.TotalAmount) {
			loss := &domain.LedgerEntry{
				ID:        uuid.New(),
				ItemID:    item.ID,
				Quantity:  oldTotal.Sub(cmd.TotalAmount),
				Price:     decimal.Zero,
				CreatedAt: s.now().UTC(),
			}
			if err := tx.AppendLedgerEntry(ctx, loss); err != nil {
				return domain.NewStoreFailure("failed to record loss entry", err)
			}
		}

		alloc, err := tx.GetAllocationByItem(ctx, cmd.ItemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load retail allocation", err)
		}
		if alloc == nil {
			return nil
		}

		switch {
		case cmd.RetailQuantity != nil:
			alloc.Quantity = *cmd.RetailQuantity
		case alloc.Quantity.GreaterThan(cmd.TotalAmount):
			alloc.Quantity = domain.ClampAllocation(cmd.TotalAmount, alloc.Quantity)
		default:
			return nil
		}
		alloc.UpdatedAt = s.now().UTC()
		if n, err := tx.UpdateAllocation(ctx, alloc); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update retail allocation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cmd.ItemID)
	s.logger.InfoContext(ctx, "item revised",
		slog.String("item_id", cmd.ItemID.String()),
		slog.Bool("record_loss", cmd.RecordLoss))

	return item, nil
}

// RemoveItem deletes an item and its retail allocation. An allocation must
// never survive its item, so both deletes share one atomic unit.
func (s *StockService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return domain.NewValidation(domain.CodeInvalidItem, "item_id is required")
	}

	unlock := s.locks.Lock(itemID)
	defer unlock()

	err := s.inTx(ctx, func(tx ports.StockTx) error {
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load item", err)
		}
		if item == nil {
			return domain.NewNotFound(domain.CodeItemNotFound, "item not found: %s", itemID)
		}
		alloc, err := tx.GetAllocationByItem(ctx, itemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load retail allocation", err)
		}
		if alloc != nil {
			if n, err := tx.DeleteAllocation(ctx, alloc.ID); err != nil || n <= 0 {
				return domain.NewStoreFailure("failed to delete retail allocation", err)
			}
		}
		if n, err := tx.DeleteItem(ctx, itemID); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to delete item", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, itemID)
	s.logger.InfoContext(ctx, "item removed", slog.String("item_id", itemID.String()))

	return nil
}

// RestockItem increases an item's total on-hand amount, e.g. from a
// supplier delivery. Restocks are not ledger events; the ledger only
// explains stock leaving inventory.
func (s *StockService) RestockItem(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*domain.Item, error) {
	if !quantity.IsPositive() {
		return nil, domain.NewValidation(domain.CodeInvalidItem, "restock quantity must be positive")
	}

	unlock := s.locks.Lock(itemID)
	defer unlock()

	var item *domain.Item
	err := s.inTx(ctx, func(tx ports.StockTx) error {
		var err error
		item, err = tx.GetItem(ctx, itemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load item", err)
		}
		if item == nil {
			return domain.NewNotFound(domain.CodeItemNotFound, "item not found: %s", itemID)
		}
		item.TotalAmount = item.TotalAmount.Add(quantity)
		item.UpdatedAt = s.now().UTC()
		if n, err := tx.UpdateItem(ctx, item); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update item", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, itemID)
	s.logger.InfoContext(ctx, "item restocked",
		slog.String("item_id", itemID.String()),
		slog.String("quantity", quantity.String()))

	return item, nil
}

// CreateItemType registers a new item category.
func (s *StockService) CreateItemType(ctx context.Context, name string) (*domain.ItemType, error) {
	itemType := &domain.ItemType{Name: name}
	if err := itemType.Validate(); err != nil {
		return nil, err
	}
	itemType.PrepareForStorage()

	err := s.inTx(ctx, func(tx ports.StockTx) error {
		if err := tx.CreateItemType(ctx, itemType); err != nil {
			return domain.NewStoreFailure("failed to create item type", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item type created",
		slog.String("type_id", itemType.ID.String()),
		slog.String("name", itemType.Name))

	return itemType, nil
}

// RenameItemType changes a category's name. Items filed under it keep their
// reference.
func (s *StockService) RenameItemType(ctx context.Context, typeID uuid.UUID, name string) (*domain.ItemType, error) {
	if typeID == uuid.Nil {
		return nil, domain.NewValidation(domain.CodeInvalidItemType, "type_id is required")
	}
	if name == "" {
		return nil, domain.NewValidation(domain.CodeInvalidItemType, "name is required")
	}

	var itemType *domain.ItemType
	err := s.inTx(ctx, func(tx ports.StockTx) error {
		var err error
		itemType, err = tx.GetItemType(ctx, typeID)
		if err != nil {
			return domain.NewStoreFailure("failed to load item type", err)
		}
		if itemType == nil {
			return domain.NewNotFound(domain.CodeItemTypeNotFound, "item type not found: %s", typeID)
		}
		itemType.Name = name
		itemType.UpdatedAt = s.now().UTC()
		if n, err := tx.UpdateItemType(ctx, itemType); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update item type", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item type renamed",
		slog.String("type_id", typeID.String()),
		slog.String("name", name))

	return itemType, nil
}

// RemoveItemType deletes a category. A type still referenced by items is a
// conflict; the items must be retyped or removed first.
func (s *StockService) RemoveItemType(ctx context.Context, typeID uuid.UUID) error {
	if typeID == uuid.Nil {
		return domain.NewValidation(domain.CodeInvalidItemType, "type_id is required")
	}

	err := s.inTx(ctx, func(tx ports.StockTx) error {
		itemType, err := tx.GetItemType(ctx, typeID)
		if err != nil {
			return domain.NewStoreFailure("failed to load item type", err)
		}
		if itemType == nil {
			return domain.NewNotFound(domain.CodeItemTypeNotFound, "item type not found: %s", typeID)
		}
		n, err := tx.CountItemsByType(ctx, typeID)
		if err != nil {
			return domain.NewStoreFailure("failed to count items by type", err)
		}
		if n > 0 {
			return domain.NewConflict(domain.CodeItemTypeInUse,
				"item type %s is referenced by %d item(s)", typeID, n)
		}
		if n, err := tx.DeleteItemType(ctx, typeID); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to delete item type", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "item type removed", slog.String("type_id", typeID.String()))
	return nil
}

// SetAllocation authoritatively sets the retail display quantity for an
// item, bounded by its current total.
func (s *StockService) SetAllocation(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*domain.RetailAllocation, error) {
	if quantity.IsNegative() {
		return nil, domain.NewValidation(domain.CodeInvalidAllocation, "quantity cannot be negative")
	}

	unlock := s.locks.Lock(itemID)
	defer unlock()

	var alloc *domain.RetailAllocation
	err := s.inTx(ctx, func(tx ports.StockTx) error {
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load item", err)
		}
		if item == nil {
			return domain.NewNotFound(domain.CodeItemNotFound, "item not found: %s", itemID)
		}
		if err := domain.ValidateAllocation(item.TotalAmount, quantity); err != nil {
			return err
		}
		alloc, err = tx.GetAllocationByItem(ctx, itemID)
		if err != nil {
			return domain.NewStoreFailure("failed to load retail allocation", err)
		}
		if alloc == nil {
			alloc = &domain.RetailAllocation{ItemID: itemID, Quantity: quantity}
			alloc.PrepareForStorage()
			if err := tx.CreateAllocation(ctx, alloc); err != nil {
				return domain.NewStoreFailure("failed to create retail allocation", err)
			}
			return nil
		}
		alloc.Quantity = quantity
		alloc.UpdatedAt = s.now().UTC()
		if n, err := tx.UpdateAllocation(ctx, alloc); err != nil || n <= 0 {
			return domain.NewStoreFailure("failed to update retail allocation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, itemID)
	s.logger.InfoContext(ctx, "retail allocation set",
		slog.String("item_id", itemID.String()),
		slog.String("quantity", quantity.String()))

	return alloc, nil
}

// DeleteSaleGroup removes a sale group. Ledger granularity is the group:
// member entries are deleted with it by the store's cascade.
func (s *StockService) DeleteSaleGroup(ctx context.Context, groupID uuid.UUID) error {
	if groupID == uuid.Nil {
		return domain.NewValidation(domain.CodeInvalidSaleGroup, "group_id is required")
	}

	err := s.inTx(ctx, func(tx ports.StockTx) error {
		n, err := tx.DeleteSaleGroup(ctx, groupID)
		if err != nil {
			return domain.NewStoreFailure("failed to delete sale group", err)
		}
		if n <= 0 {
			return domain.NewNotFound(domain.CodeGroupNotFound, "sale group not found: %s", groupID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "sale group deleted", slog.String("group_id", groupID.String()))
	return nil
}

// applySale performs the per-line sale steps inside an open transaction:
// append the ledger entry, then decrement the allocation and the item total
// by the same quantity. Both sides shrinking together preserves the
// allocation invariant.
func (s *StockService) applySale(ctx context.Context, tx ports.StockTx, cmd ports.SaleCommand, groupID *uuid.UUID) (*domain.LedgerEntry, error) {
	item, err := tx.GetItem(ctx, cmd.ItemID)
	if err != nil {
		return nil, domain.NewStoreFailure("failed to load item", err)
	}
	if item == nil {
		return nil, domain.NewNotFound(domain.CodeItemNotFound, "item not found: %s", cmd.ItemID)
	}

	// Sales decrement the retail display; an item without an allocation is
	// not sellable.
	alloc, err := tx.GetAllocationByItem(ctx, cmd.ItemID)
	if err != nil {
		return nil, domain.NewStoreFailure("failed to load retail allocation", err)
	}
	if alloc == nil {
		return nil, domain.NewNotFound(domain.CodeAllocationNotFound, "no retail allocation for item: %s", cmd.ItemID)
	}
	if alloc.Quantity.LessThan(cmd.Quantity) {
		return nil, domain.NewConflict(domain.CodeInsufficientStock,
			"insufficient retail stock for item %s: have %s, want %s", cmd.ItemID, alloc.Quantity, cmd.Quantity)
	}

	entry := &domain.LedgerEntry{
		ID:        uuid.New(),
		ItemID:    cmd.ItemID,
		GroupID:   groupID,
		Quantity:  cmd.Quantity,
		Price:     cmd.Price,
		CreatedAt: s.now().UTC(),
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, domain.NewStoreFailure("failed to append ledger entry", err)
	}

	alloc.Quantity = alloc.Quantity.Sub(cmd.Quantity)
	alloc.UpdatedAt = s.now().UTC()
	if n, err := tx.UpdateAllocation(ctx, alloc); err != nil || n <= 0 {
		return nil, domain.NewStoreFailure("failed to update retail allocation", err)
	}

	item.TotalAmount = item.TotalAmount.Sub(cmd.Quantity)
	if item.TotalAmount.IsNegative() {
		// Allocation covered the quantity but the total did not: the
		// records were already inconsistent. Surface, never clamp.
		return nil, domain.NewConflict(domain.CodeInsufficientStock,
			"item %s total would go negative", cmd.ItemID)
	}
	item.UpdatedAt = s.now().UTC()
	if n, err := tx.UpdateItem(ctx, item); err != nil || n <= 0 {
		return nil, domain.NewStoreFailure("failed to update item", err)
	}

	return entry, nil
}

// checkItemType verifies that a referenced item type exists within the open
// transaction scope. A nil typeID means the item is untyped.
func (s *StockService) checkItemType(ctx context.Context, tx ports.StockTx, typeID *uuid.UUID) error {
	if typeID == nil {
		return nil
	}
	itemType, err := tx.GetItemType(ctx, *typeID)
	if err != nil {
		return domain.NewStoreFailure("failed to load item type", err)
	}
	if itemType == nil {
		return domain.NewNotFound(domain.CodeItemTypeNotFound, "item type not found: %s", *typeID)
	}
	return nil
}

// inTx runs fn inside one store transaction, committing on success and
// rolling back every partial effect on failure or cancellation. A panic in
// fn rolls the transaction back before propagating, so the store is never
// left holding an open scope.
func (s *StockService) inTx(ctx context.Context, fn func(tx ports.StockTx) error) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return domain.NewStoreFailure("failed to begin stock transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.ErrorContext(ctx, "rollback after panic failed",
					slog.String("error", rbErr.Error()))
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.ErrorContext(ctx, "rollback failed",
				slog.String("error", rbErr.Error()))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.ErrorContext(ctx, "rollback after failed commit failed",
				slog.String("error", rbErr.Error()))
		}
		return domain.NewStoreFailure("failed to commit stock transaction", err)
	}
	return nil
}

func (s *StockService) invalidate(ctx context.Context, itemID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, "item:"+itemID.String()); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
	}
	if err := s.cache.DeletePattern(ctx, "stats:sales*"); err != nil {
		s.logger.WarnContext(ctx, "stats cache invalidation failed",
			slog.String("error", err.Error()))
	}
}

func validateSale(cmd ports.SaleCommand) error {
	if cmd.ItemID == uuid.Nil {
		return domain.NewValidation(domain.CodeInvalidSale, "item_id is required")
	}
	if !cmd.Quantity.IsPositive() {
		return domain.NewValidation(domain.CodeInvalidSale, "quantity must be positive")
	}
	if cmd.Price.IsNegative() {
		return domain.NewValidation(domain.CodeInvalidSale, "price cannot be negative")
	}
	return nil
}
