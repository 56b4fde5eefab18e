// internal/adapters/memstore/tx.go
package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
)

// tx mutates the store in place and keeps the Begin-time snapshot for
// rollback. Commit discards the snapshot; Rollback restores it.
type tx struct {
	store    *Store
	snapshot *state
	done     bool
}

func (t *tx) guard(ctx context.Context, op Op) error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.store.failure(op)
}

func (t *tx) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if err := t.guard(ctx, OpGetItem); err != nil {
		return nil, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if it, ok := t.store.state.items[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (t *tx) CreateItem(ctx context.Context, item *domain.Item) error {
	if err := t.guard(ctx, OpCreateItem); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, exists := t.store.state.items[item.ID]; exists {
		return fmt.Errorf("duplicate item id %s", item.ID)
	}
	t.store.state.items[item.ID] = *item
	return nil
}

func (t *tx) UpdateItem(ctx context.Context, item *domain.Item) (int64, error) {
	if err := t.guard(ctx, OpUpdateItem); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.state.items[item.ID]; !ok {
		return 0, nil
	}
	t.store.state.items[item.ID] = *item
	return 1, nil
}

func (t *tx) DeleteItem(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := t.guard(ctx, OpDeleteItem); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.state.items[id]; !ok {
		return 0, nil
	}
	delete(t.store.state.items, id)
	return 1, nil
}

func (t *tx) GetItemType(ctx context.Context, id uuid.UUID) (*domain.ItemType, error) {
	if err := t.guard(ctx, OpGetItemType); err != nil {
		return nil, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if it, ok := t.store.state.itemTypes[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (t *tx) CreateItemType(ctx context.Context, itemType *domain.ItemType) error {
	if err := t.guard(ctx, OpCreateItemType); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, exists := t.store.state.itemTypes[itemType.ID]; exists {
		return fmt.Errorf("duplicate item type id %s", itemType.ID)
	}
	t.store.state.itemTypes[itemType.ID] = *itemType
	return nil
}

func (t *tx) UpdateItemType(ctx context.Context, itemType *domain.ItemType) (int64, error) {
	if err := t.guard(ctx, OpUpdateItemType); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.state.itemTypes[itemType.ID]; !ok {
		return 0, nil
	}
	t.store.state.itemTypes[itemType.ID] = *itemType
	return 1, nil
}

func (t *tx) DeleteItemType(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := t.guard(ctx, OpDeleteItemType); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.state.itemTypes[id]; !ok {
		return 0, nil
	}
	// Mirrors the Postgres foreign key: a referenced type cannot go.
	for _, item := range t.store.state.items {
		if item.TypeID != nil && *item.TypeID == id {
			return 0, fmt.Errorf("item type %s is referenced by item %s", id, item.ID)
		}
	}
	delete(t.store.state.itemTypes, id)
	return 1, nil
}

func (t *tx) CountItemsByType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	if err := t.guard(ctx, OpCountItemsByType); err != nil {
		return 0, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	var n int64
	for _, item := range t.store.state.items {
		if item.TypeID != nil && *item.TypeID == typeID {
			n++
		}
	}
	return n, nil
}

func (t *tx) GetAllocationByItem(ctx context.Context, itemID uuid.UUID) (*domain.RetailAllocation, error) {
	if err := t.guard(ctx, OpGetAllocationByItem); err != nil {
		return nil, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if allocID, ok := t.store.state.allocByItem[itemID]; ok {
		a := t.store.state.allocations[allocID]
		return &a, nil
	}
	return nil, nil
}

func (t *tx) CreateAllocation(ctx context.Context, alloc *domain.RetailAllocation) error {
	if err := t.guard(ctx, OpCreateAllocation); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, exists := t.store.state.allocByItem[alloc.ItemID]; exists {
		return fmt.Errorf("item %s already has an allocation", alloc.ItemID)
	}
	t.store.state.allocations[alloc.ID] = *alloc
	t.store.state.allocByItem[alloc.ItemID] = alloc.ID
	return nil
}

func (t *tx) UpdateAllocation(ctx context.Context, alloc *domain.RetailAllocation) (int64, error) {
	if err := t.guard(ctx, OpUpdateAllocation); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.state.allocations[alloc.ID]; !ok {
		return 0, nil
	}
	t.store.state.allocations[alloc.ID] = *alloc
	return 1, nil
}

func (t *tx) DeleteAllocation(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := t.guard(ctx, OpDeleteAllocation); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	a, ok := t.store.state.allocations[id]
	if !ok {
		return 0, nil
	}
	delete(t.store.state.allocations, id)
	delete(t.store.state.allocByItem, a.ItemID)
	return 1, nil
}

func (t *tx) AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := t.guard(ctx, OpAppendLedgerEntry); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, exists := t.store.state.ledger[entry.ID]; exists {
		return fmt.Errorf("duplicate ledger entry id %s", entry.ID)
	}
	t.store.state.ledger[entry.ID] = *entry
	t.store.state.ledgerOrder = append(t.store.state.ledgerOrder, entry.ID)
	return nil
}

func (t *tx) GetLedgerEntry(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	if err := t.guard(ctx, OpGetLedgerEntry); err != nil {
		return nil, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if e, ok := t.store.state.ledger[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (t *tx) UpdateLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	if err := t.guard(ctx, OpUpdateLedgerEntry); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.state.ledger[entry.ID]; !ok {
		return 0, nil
	}
	t.store.state.ledger[entry.ID] = *entry
	return 1, nil
}

func (t *tx) CreateSaleGroup(ctx context.Context, group *domain.SaleGroup) error {
	if err := t.guard(ctx, OpCreateSaleGroup); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, exists := t.store.state.groups[group.ID]; exists {
		return fmt.Errorf("duplicate sale group id %s", group.ID)
	}
	t.store.state.groups[group.ID] = *group
	return nil
}

func (t *tx) DeleteSaleGroup(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := t.guard(ctx, OpDeleteSaleGroup); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.state.groups[id]; !ok {
		return 0, nil
	}
	delete(t.store.state.groups, id)
	// Group granularity: member entries go with the group.
	kept := t.store.state.ledgerOrder[:0]
	for _, entryID := range t.store.state.ledgerOrder {
		e := t.store.state.ledger[entryID]
		if e.GroupID != nil && *e.GroupID == id {
			delete(t.store.state.ledger, entryID)
			continue
		}
		kept = append(kept, entryID)
	}
	t.store.state.ledgerOrder = kept
	return 1, nil
}

func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	if err := t.store.failure(OpCommit); err != nil {
		// A failed commit leaves no effects behind.
		t.restore()
		t.finish()
		return err
	}
	if err := ctx.Err(); err != nil {
		t.restore()
		t.finish()
		return err
	}
	t.finish()
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.restore()
	t.finish()
	return nil
}

func (t *tx) restore() {
	t.store.mu.Lock()
	t.store.state = t.snapshot
	t.store.mu.Unlock()
}

func (t *tx) finish() {
	t.done = true
	t.snapshot = nil
	t.store.txMu.Unlock()
}
