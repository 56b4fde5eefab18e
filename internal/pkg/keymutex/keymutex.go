// internal/pkg/keymutex/keymutex.go

// Package keymutex provides per-key mutual exclusion. The stock engine uses
// it to serialize operations touching the same item while letting unrelated
// items proceed in parallel.
package keymutex

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// KeyMutex hands out one mutex per key. Entries are reference-counted and
// released once nobody holds or waits for the key.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[uuid.UUID]*entry)}
}

// Lock acquires the mutex for key and returns the matching unlock func.
func (k *KeyMutex) Lock(key uuid.UUID) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// LockAll acquires the mutexes for every distinct key in deterministic
// order, so two batches touching overlapping items cannot deadlock.
func (k *KeyMutex) LockAll(keys []uuid.UUID) func() {
	distinct := make([]uuid.UUID, 0, len(keys))
	seen := make(map[uuid.UUID]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, key)
	}
	sort.Slice(distinct, func(i, j int) bool {
		return distinct[i].String() < distinct[j].String()
	})

	unlocks := make([]func(), 0, len(distinct))
	for _, key := range distinct {
		unlocks = append(unlocks, k.Lock(key))
	}

	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}
