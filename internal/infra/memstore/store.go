// Package memstore keeps every record in process memory. It implements the
// same write and read ports as the PostgreSQL store and is used when
// DB_DRIVER=memory and by tests.
package memstore

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

type userRow struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	createdAt    time.Time
}

type slotRow struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	title     string
	startTime time.Time
	endTime   time.Time
	status    slot.Status
	createdAt time.Time
	updatedAt time.Time
}

type requestRow struct {
	id          uuid.UUID
	requesterID uuid.UUID
	responderID uuid.UUID
	mySlotID    uuid.UUID
	theirSlotID uuid.UUID
	status      swap.Status
	reason      swap.Reason
	createdAt   time.Time
	resolvedAt  *time.Time
}

// Store holds all tables behind one lock. Write transactions take the write
// lock for their whole duration, so they are serializable.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]userRow
	slots    map[uuid.UUID]slotRow
	requests map[uuid.UUID]requestRow
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]userRow),
		slots:    make(map[uuid.UUID]slotRow),
		requests: make(map[uuid.UUID]requestRow),
	}
}

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &memTx{store: u.store}
	defer func() {
		if r := recover(); r != nil {
			tx.rollback()
			panic(r)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memTx struct {
	store *Store
	undo  []func()
}

func (t *memTx) Slots() shared.SlotRepository               { return &slotRepo{tx: t} }
func (t *memTx) SwapRequests() shared.SwapRequestRepository { return &requestRepo{tx: t} }
func (t *memTx) Users() shared.UserRepository               { return &userRepo{tx: t} }

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memTx) putSlot(row slotRow) {
	prev, existed := t.store.slots[row.id]
	t.store.slots[row.id] = row
	t.undo = append(t.undo, func() {
		if existed {
			t.store.slots[row.id] = prev
		} else {
			delete(t.store.slots, row.id)
		}
	})
}

func (t *memTx) deleteSlot(id uuid.UUID) {
	prev, existed := t.store.slots[id]
	if !existed {
		return
	}
	delete(t.store.slots, id)
	t.undo = append(t.undo, func() { t.store.slots[id] = prev })
}

func (t *memTx) putRequest(row requestRow) {
	prev, existed := t.store.requests[row.id]
	t.store.requests[row.id] = row
	t.undo = append(t.undo, func() {
		if existed {
			t.store.requests[row.id] = prev
		} else {
			delete(t.store.requests, row.id)
		}
	})
}

func (t *memTx) deleteRequest(id uuid.UUID) {
	prev, existed := t.store.requests[id]
	if !existed {
		return
	}
	delete(t.store.requests, id)
	t.undo = append(t.undo, func() { t.store.requests[id] = prev })
}

func (t *memTx) putUser(row userRow) {
	t.store.users[row.id] = row
	t.undo = append(t.undo, func() { delete(t.store.users, row.id) })
}

func compareSlots(a, b slotRow) int {
	if c := a.startTime.Compare(b.startTime); c != 0 {
		return c
	}
	return bytes.Compare(a.id[:], b.id[:])
}

func compareRequests(a, b requestRow) int {
	if c := cmp.Compare(a.createdAt.UnixNano(), b.createdAt.UnixNano()); c != 0 {
		return c
	}
	return bytes.Compare(a.id[:], b.id[:])
}

func sortedSlots(rows []slotRow) []slotRow {
	slices.SortFunc(rows, compareSlots)
	return rows
}

func sortedRequests(rows []requestRow) []requestRow {
	slices.SortFunc(rows, compareRequests)
	return rows
}
