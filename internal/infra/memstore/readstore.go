package memstore

import (
	"context"
	"strings"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotReadStore struct {
	store *Store
}

func NewSlotReadStore(store *Store) *SlotReadStore {
	return &SlotReadStore{store: store}
}

func (r *SlotReadStore) ListByOwner(_ context.Context, ownerID uuid.UUID, filter queries.SlotFilter) ([]*queries.SlotView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var rows []slotRow
	for _, row := range r.store.slots {
		if row.ownerID != ownerID {
			continue
		}
		if filter.Status != "" && row.status.String() != filter.Status {
			continue
		}
		if filter.StartFrom != nil && row.startTime.Before(*filter.StartFrom) {
			continue
		}
		if filter.EndBefore != nil && row.endTime.After(*filter.EndBefore) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(row.title), search) {
			continue
		}
		rows = append(rows, row)
	}
	return r.views(sortedSlots(rows)), nil
}

func (r *SlotReadStore) ListSwappable(_ context.Context, excludingOwnerID uuid.UUID) ([]*queries.SlotView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []slotRow
	for _, row := range r.store.slots {
		if row.status == slot.StatusSwappable && row.ownerID != excludingOwnerID {
			rows = append(rows, row)
		}
	}
	return r.views(sortedSlots(rows)), nil
}

func (r *SlotReadStore) CountByStatus(_ context.Context, ownerID uuid.UUID) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[string]int)
	for _, row := range r.store.slots {
		if row.ownerID == ownerID {
			counts[row.status.String()]++
		}
	}
	return counts, nil
}

func (r *SlotReadStore) CountStartingAfter(_ context.Context, ownerID uuid.UUID, after time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, row := range r.store.slots {
		if row.ownerID == ownerID && row.startTime.After(after) {
			n++
		}
	}
	return n, nil
}

// views must be called with the read lock held.
func (r *SlotReadStore) views(rows []slotRow) []*queries.SlotView {
	out := make([]*queries.SlotView, 0, len(rows))
	for _, row := range rows {
		out = append(out, &queries.SlotView{
			ID:        row.id,
			OwnerID:   row.ownerID,
			OwnerName: r.store.users[row.ownerID].name,
			Title:     row.title,
			StartTime: row.startTime,
			EndTime:   row.endTime,
			Status:    row.status.String(),
			CreatedAt: row.createdAt,
			UpdatedAt: row.updatedAt,
		})
	}
	return out
}

type SwapRequestReadStore struct {
	store *Store
}

func NewSwapRequestReadStore(store *Store) *SwapRequestReadStore {
	return &SwapRequestReadStore{store: store}
}

func (r *SwapRequestReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.SwapRequestView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr(nil, infra.KindNotFound, "swap request not found", nil)
	}
	return r.view(row), nil
}

func (r *SwapRequestReadStore) ListByResponder(_ context.Context, userID uuid.UUID) ([]*queries.SwapRequestView, error) {
	return r.list(func(row requestRow) bool { return row.responderID == userID }), nil
}

func (r *SwapRequestReadStore) ListByRequester(_ context.Context, userID uuid.UUID) ([]*queries.SwapRequestView, error) {
	return r.list(func(row requestRow) bool { return row.requesterID == userID }), nil
}

func (r *SwapRequestReadStore) list(match func(requestRow) bool) []*queries.SwapRequestView {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []requestRow
	for _, row := range r.store.requests {
		if match(row) {
			rows = append(rows, row)
		}
	}
	rows = sortedRequests(rows)
	out := make([]*queries.SwapRequestView, 0, len(rows))
	// newest first, matching the SQL read store
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, r.view(rows[i]))
	}
	return out
}

func (r *SwapRequestReadStore) view(row requestRow) *queries.SwapRequestView {
	v := &queries.SwapRequestView{
		ID:         row.id,
		Requester:  r.userSummary(row.requesterID),
		Responder:  r.userSummary(row.responderID),
		MySlot:     r.slotSummary(row.mySlotID),
		TheirSlot:  r.slotSummary(row.theirSlotID),
		Status:     row.status.String(),
		CreatedAt:  row.createdAt,
		ResolvedAt: row.resolvedAt,
	}
	if row.reason != "" {
		reason := string(row.reason)
		v.ResolutionReason = &reason
	}
	return v
}

func (r *SwapRequestReadStore) userSummary(id uuid.UUID) queries.UserSummary {
	u := r.store.users[id]
	return queries.UserSummary{ID: id, Name: u.name, Email: u.email}
}

func (r *SwapRequestReadStore) slotSummary(id uuid.UUID) queries.SlotSummary {
	s := r.store.slots[id]
	return queries.SlotSummary{ID: id, Title: s.title, StartTime: s.startTime, EndTime: s.endTime, Status: s.status.String()}
}

type UserReadStore struct {
	store *Store
}

func NewUserReadStore(store *Store) *UserReadStore {
	return &UserReadStore{store: store}
}

func (r *UserReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.users[id]
	if !ok {
		return nil, infra.WrapRepoErr(nil, infra.KindNotFound, "user not found", nil)
	}
	return &queries.UserView{ID: row.id, Name: row.name, Email: row.email, CreatedAt: row.createdAt}, nil
}
