package memstore

import (
	"context"
	"strings"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/infra"

	"github.com/google/uuid"
)

type slotRepo struct {
	tx *memTx
}

func (r *slotRepo) Create(_ context.Context, s *slot.Slot) error {
	if _, ok := r.tx.store.users[s.OwnerID()]; !ok {
		return infra.WrapRepoErr(nil, infra.KindForeignKeyViolated, "slot owner does not exist", nil)
	}
	if _, ok := r.tx.store.slots[s.ID()]; ok {
		return infra.WrapRepoErr(nil, infra.KindDuplicateKey, "slot already exists", nil)
	}
	r.tx.putSlot(slotRowFrom(s))
	return nil
}

func (r *slotRepo) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, ok := r.tx.store.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr(nil, infra.KindNotFound, "slot not found", nil)
	}
	return row.toDomain(), nil
}

// FindByIDForUpdate needs no row lock here; the transaction already holds the store lock.
func (r *slotRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	return r.FindByID(ctx, id)
}

func (r *slotRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*slot.Slot, error) {
	var rows []slotRow
	for _, row := range r.tx.store.slots {
		if row.ownerID == ownerID {
			rows = append(rows, row)
		}
	}
	out := make([]*slot.Slot, 0, len(rows))
	for _, row := range sortedSlots(rows) {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *slotRepo) UpdateDetails(_ context.Context, s *slot.Slot) (bool, error) {
	row, ok := r.tx.store.slots[s.ID()]
	if !ok || row.ownerID != s.OwnerID() || row.status == slot.StatusSwapPending {
		return false, nil
	}
	row.title = s.Title()
	row.startTime = s.StartTime()
	row.endTime = s.EndTime()
	row.updatedAt = s.UpdatedAt()
	r.tx.putSlot(row)
	return true, nil
}

func (r *slotRepo) DeleteUnlocked(_ context.Context, id, ownerID uuid.UUID) (bool, error) {
	row, ok := r.tx.store.slots[id]
	if !ok || row.ownerID != ownerID || row.status == slot.StatusSwapPending {
		return false, nil
	}
	for reqID, req := range r.tx.store.requests {
		if req.mySlotID == id || req.theirSlotID == id {
			r.tx.deleteRequest(reqID)
		}
	}
	r.tx.deleteSlot(id)
	return true, nil
}

func (r *slotRepo) CompareAndSetStatus(_ context.Context, id uuid.UUID, expected, next slot.Status, at time.Time) (bool, error) {
	row, ok := r.tx.store.slots[id]
	if !ok || row.status != expected {
		return false, nil
	}
	row.status = next
	row.updatedAt = at
	r.tx.putSlot(row)
	return true, nil
}

func (r *slotRepo) TransferOwnership(_ context.Context, id, from, to uuid.UUID, at time.Time) (bool, error) {
	row, ok := r.tx.store.slots[id]
	if !ok || row.ownerID != from {
		return false, nil
	}
	row.ownerID = to
	row.updatedAt = at
	r.tx.putSlot(row)
	return true, nil
}

type requestRepo struct {
	tx *memTx
}

func (r *requestRepo) Create(_ context.Context, req *swap.Request) error {
	for _, id := range req.SlotIDs() {
		if _, ok := r.tx.store.slots[id]; !ok {
			return infra.WrapRepoErr(nil, infra.KindForeignKeyViolated, "swap request references a missing slot", nil)
		}
	}
	r.tx.putRequest(requestRowFrom(req))
	return nil
}

// FindByIDForUpdate needs no row lock here; the transaction already holds the store lock.
func (r *requestRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*swap.Request, error) {
	row, ok := r.tx.store.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr(nil, infra.KindNotFound, "swap request not found", nil)
	}
	return row.toDomain(), nil
}

func (r *requestRepo) Resolve(_ context.Context, req *swap.Request) (bool, error) {
	row, ok := r.tx.store.requests[req.ID()]
	if !ok || row.status != swap.StatusPending {
		return false, nil
	}
	row.status = req.Status()
	row.reason = req.Reason()
	row.resolvedAt = req.ResolvedAt()
	r.tx.putRequest(row)
	return true, nil
}

func (r *requestRepo) ListPendingBySlots(_ context.Context, slotIDs []uuid.UUID, excludeID uuid.UUID) ([]*swap.Request, error) {
	var rows []requestRow
	for _, row := range r.tx.store.requests {
		if row.status != swap.StatusPending || row.id == excludeID {
			continue
		}
		for _, id := range slotIDs {
			if row.mySlotID == id || row.theirSlotID == id {
				rows = append(rows, row)
				break
			}
		}
	}
	return toRequests(sortedRequests(rows)), nil
}

func (r *requestRepo) ListPendingCreatedBefore(_ context.Context, before time.Time, limit int) ([]*swap.Request, error) {
	var rows []requestRow
	for _, row := range r.tx.store.requests {
		if row.status == swap.StatusPending && row.createdAt.Before(before) {
			rows = append(rows, row)
		}
	}
	rows = sortedRequests(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return toRequests(rows), nil
}

type userRepo struct {
	tx *memTx
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	for _, row := range r.tx.store.users {
		if strings.EqualFold(row.email, u.Email().Value()) {
			return infra.WrapRepoErr(nil, infra.KindDuplicateKey, "email already registered", nil)
		}
	}
	r.tx.putUser(userRow{
		id:           u.ID(),
		name:         u.Name().Value(),
		email:        u.Email().Value(),
		passwordHash: u.PasswordHash(),
		createdAt:    u.CreatedAt(),
	})
	return nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, row := range r.tx.store.users {
		if strings.EqualFold(row.email, email) {
			return user.Reconstruct(row.id, row.name, row.email, row.passwordHash, row.createdAt), nil
		}
	}
	return nil, infra.WrapRepoErr(nil, infra.KindNotFound, "user not found", nil)
}

func slotRowFrom(s *slot.Slot) slotRow {
	return slotRow{
		id:        s.ID(),
		ownerID:   s.OwnerID(),
		title:     s.Title(),
		startTime: s.StartTime(),
		endTime:   s.EndTime(),
		status:    s.Status(),
		createdAt: s.CreatedAt(),
		updatedAt: s.UpdatedAt(),
	}
}

func (row slotRow) toDomain() *slot.Slot {
	return slot.Reconstruct(row.id, row.ownerID, row.title, row.startTime, row.endTime, row.status, row.createdAt, row.updatedAt)
}

func requestRowFrom(r *swap.Request) requestRow {
	return requestRow{
		id:          r.ID(),
		requesterID: r.RequesterID(),
		responderID: r.ResponderID(),
		mySlotID:    r.MySlotID(),
		theirSlotID: r.TheirSlotID(),
		status:      r.Status(),
		reason:      r.Reason(),
		createdAt:   r.CreatedAt(),
		resolvedAt:  r.ResolvedAt(),
	}
}

func (row requestRow) toDomain() *swap.Request {
	return swap.Reconstruct(row.id, row.requesterID, row.responderID, row.mySlotID, row.theirSlotID, row.status, row.reason, row.createdAt, row.resolvedAt)
}

func toRequests(rows []requestRow) []*swap.Request {
	out := make([]*swap.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
