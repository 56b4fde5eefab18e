// internal/adapters/memstore/memstore.go

// Package memstore is the in-memory reference implementation of the
// StockStore port. A transaction snapshots the whole state on Begin and
// restores it on Rollback, giving the same all-or-nothing visibility as the
// Postgres adapter. It backs the orchestrator tests, including fault
// injection for the atomicity properties, and the dev seeder.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// Op names a store operation for fault injection.
type Op string

const (
	OpGetItem             Op = "GetItem"
	OpCreateItem          Op = "CreateItem"
	OpUpdateItem          Op = "UpdateItem"
	OpDeleteItem          Op = "DeleteItem"
	OpGetItemType         Op = "GetItemType"
	OpCreateItemType      Op = "CreateItemType"
	OpUpdateItemType      Op = "UpdateItemType"
	OpDeleteItemType      Op = "DeleteItemType"
	OpCountItemsByType    Op = "CountItemsByType"
	OpGetAllocationByItem Op = "GetAllocationByItem"
	OpCreateAllocation    Op = "CreateAllocation"
	OpUpdateAllocation    Op = "UpdateAllocation"
	OpDeleteAllocation    Op = "DeleteAllocation"
	OpAppendLedgerEntry   Op = "AppendLedgerEntry"
	OpGetLedgerEntry      Op = "GetLedgerEntry"
	OpUpdateLedgerEntry   Op = "UpdateLedgerEntry"
	OpCreateSaleGroup     Op = "CreateSaleGroup"
	OpDeleteSaleGroup     Op = "DeleteSaleGroup"
	OpCommit              Op = "Commit"
)

// state holds every record kind keyed by identity.
type state struct {
	items       map[uuid.UUID]domain.Item
	itemTypes   map[uuid.UUID]domain.ItemType
	allocations map[uuid.UUID]domain.RetailAllocation
	allocByItem map[uuid.UUID]uuid.UUID
	ledger      map[uuid.UUID]domain.LedgerEntry
	ledgerOrder []uuid.UUID
	groups      map[uuid.UUID]domain.SaleGroup
}

func newState() *state {
	return &state{
		items:       make(map[uuid.UUID]domain.Item),
		itemTypes:   make(map[uuid.UUID]domain.ItemType),
		allocations: make(map[uuid.UUID]domain.RetailAllocation),
		allocByItem: make(map[uuid.UUID]uuid.UUID),
		ledger:      make(map[uuid.UUID]domain.LedgerEntry),
		groups:      make(map[uuid.UUID]domain.SaleGroup),
	}
}

func (s *state) clone() *state {
	c := &state{
		items:       make(map[uuid.UUID]domain.Item, len(s.items)),
		itemTypes:   make(map[uuid.UUID]domain.ItemType, len(s.itemTypes)),
		allocations: make(map[uuid.UUID]domain.RetailAllocation, len(s.allocations)),
		allocByItem: make(map[uuid.UUID]uuid.UUID, len(s.allocByItem)),
		ledger:      make(map[uuid.UUID]domain.LedgerEntry, len(s.ledger)),
		ledgerOrder: append([]uuid.UUID(nil), s.ledgerOrder...),
		groups:      make(map[uuid.UUID]domain.SaleGroup, len(s.groups)),
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.itemTypes {
		c.itemTypes[k] = v
	}
	for k, v := range s.allocations {
		c.allocations[k] = v
	}
	for k, v := range s.allocByItem {
		c.allocByItem[k] = v
	}
	for k, v := range s.ledger {
		c.ledger[k] = v
	}
	for k, v := range s.groups {
		c.groups[k] = v
	}
	return c
}

// Store is an in-memory StockStore. One transaction runs at a time; the
// orchestrator's per-item serialization keeps contention low in practice.
type Store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *state

	failMu sync.Mutex
	fail   map[Op]error
}

// Statically assert that *Store implements the StockStore port.
var _ ports.StockStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{state: newState(), fail: make(map[Op]error)}
}

// FailOn makes every subsequent call of op return err until cleared with a
// nil err. Used to exercise rollback paths.
func (s *Store) FailOn(op Op, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

func (s *Store) failure(op Op) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.fail[op]
}

// Begin opens a transaction scope. The whole state is snapshotted so that
// Rollback restores the pre-operation records exactly.
func (s *Store) Begin(ctx context.Context) (ports.StockTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.txMu.Lock()
	s.mu.RLock()
	snap := s.state.clone()
	s.mu.RUnlock()
	return &tx{store: s, snapshot: snap}, nil
}

// Item returns a copy of the stored item, or nil.
func (s *Store) Item(id uuid.UUID) *domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if it, ok := s.state.items[id]; ok {
		return &it
	}
	return nil
}

// ItemType returns a copy of the stored item type, or nil.
func (s *Store) ItemType(id uuid.UUID) *domain.ItemType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.state.itemTypes[id]; ok {
		return &t
	}
	return nil
}

// AllocationByItem returns a copy of the item's allocation, or nil.
func (s *Store) AllocationByItem(itemID uuid.UUID) *domain.RetailAllocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if allocID, ok := s.state.allocByItem[itemID]; ok {
		a := s.state.allocations[allocID]
		return &a
	}
	return nil
}

// LedgerEntries returns all ledger entries in append order.
func (s *Store) LedgerEntries() []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LedgerEntry, 0, len(s.state.ledgerOrder))
	for _, id := range s.state.ledgerOrder {
		out = append(out, s.state.ledger[id])
	}
	return out
}

// SaleGroup returns a copy of the stored group, or nil.
func (s *Store) SaleGroup(id uuid.UUID) *domain.SaleGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.state.groups[id]; ok {
		return &g
	}
	return nil
}

// Snapshot returns a deep copy of the current state for before/after
// comparisons in tests.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{state: s.state.clone()}
}

// Snapshot is an opaque deep copy of store state.
type Snapshot struct {
	state *state
}

// Equal reports whether two snapshots hold identical records.
func (a Snapshot) Equal(b Snapshot) bool {
	if len(a.state.items) != len(b.state.items) ||
		len(a.state.itemTypes) != len(b.state.itemTypes) ||
		len(a.state.allocations) != len(b.state.allocations) ||
		len(a.state.ledger) != len(b.state.ledger) ||
		len(a.state.groups) != len(b.state.groups) {
		return false
	}
	for k, v := range a.state.itemTypes {
		w, ok := b.state.itemTypes[k]
		if !ok || w.Name != v.Name {
			return false
		}
	}
	for k, v := range a.state.items {
		w, ok := b.state.items[k]
		if !ok || !itemsEqual(v, w) {
			return false
		}
	}
	for k, v := range a.state.allocations {
		w, ok := b.state.allocations[k]
		if !ok || w.ItemID != v.ItemID || !w.Quantity.Equal(v.Quantity) {
			return false
		}
	}
	for k, v := range a.state.ledger {
		w, ok := b.state.ledger[k]
		if !ok || w.ItemID != v.ItemID || !w.Quantity.Equal(v.Quantity) || !w.Price.Equal(v.Price) {
			return false
		}
	}
	for k := range a.state.groups {
		if _, ok := b.state.groups[k]; !ok {
			return false
		}
	}
	return true
}

func itemsEqual(a, b domain.Item) bool {
	return a.ID == b.ID && a.Name == b.Name && a.SKU == b.SKU &&
		typeIDsEqual(a.TypeID, b.TypeID) &&
		a.Price.Equal(b.Price) && a.TotalAmount.Equal(b.TotalAmount) &&
		a.ReorderLevel.Equal(b.ReorderLevel)
}

func typeIDsEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
