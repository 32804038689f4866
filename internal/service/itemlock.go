package service

import (
	"sync"

	"github.com/google/uuid"
)

// itemLocks serializes booking creation per item id. Two concurrent
// reservation attempts for the same item could otherwise both pass the
// overlap check before either insert lands (check-then-act race); holding
// the item's lock across the validate-then-insert sequence makes the second
// attempt observe the first one's write. Attempts on different items never
// contend.
//
// Entries are reference-counted and removed once unused, so the map stays
// bounded by the number of items with an in-flight reservation.
type itemLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*itemLock
}

type itemLock struct {
	mu   sync.Mutex
	refs int
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[uuid.UUID]*itemLock)}
}

// lock acquires the lock for the given item id and returns the matching
// unlock function. Callers must invoke unlock exactly once.
func (l *itemLocks) lock(id uuid.UUID) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &itemLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
