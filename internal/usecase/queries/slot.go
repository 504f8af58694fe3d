package queries

//go:generate mockgen -source=slot.go -destination=../../mock/queries/slot.go -package=queriesmock

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

const MinSearchLength = 3

// SlotFilter narrows a listing of the caller's own slots. Zero values are ignored.
type SlotFilter struct {
	Status    string
	StartFrom *time.Time
	EndBefore *time.Time
	Search    string
}

func (f SlotFilter) Validate() error {
	if f.Status != "" {
		if _, err := slot.ParseStatus(f.Status); err != nil {
			return err
		}
	}
	if f.Search != "" && utf8.RuneCountInString(strings.TrimSpace(f.Search)) < MinSearchLength {
		return errs.Wrap(errs.ErrInvalidInput, "search must be at least 3 characters")
	}
	if f.StartFrom != nil && f.EndBefore != nil && f.EndBefore.Before(*f.StartFrom) {
		return errs.Wrap(errs.ErrInvalidInput, "end_date must not precede start_date")
	}
	return nil
}

type SlotReadStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter SlotFilter) ([]*SlotView, error)
	ListSwappable(ctx context.Context, excludingOwnerID uuid.UUID) ([]*SlotView, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int, error)
	CountStartingAfter(ctx context.Context, ownerID uuid.UUID, after time.Time) (int, error)
}

type SlotQueries interface {
	ListOwn(ctx context.Context, ownerID uuid.UUID, filter SlotFilter) ([]*SlotView, error)
	ListSwappable(ctx context.Context, excludingOwnerID uuid.UUID) ([]*SlotView, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (*SlotStats, error)
}

type slotQueriesImpl struct {
	store SlotReadStore
	clock clock.Clock
}

func NewSlotQueries(store SlotReadStore, clk clock.Clock) SlotQueries {
	return &slotQueriesImpl{store: store, clock: clk}
}

func (q *slotQueriesImpl) ListOwn(ctx context.Context, ownerID uuid.UUID, filter SlotFilter) ([]*SlotView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return q.store.ListByOwner(ctx, ownerID, filter)
}

func (q *slotQueriesImpl) ListSwappable(ctx context.Context, excludingOwnerID uuid.UUID) ([]*SlotView, error) {
	return q.store.ListSwappable(ctx, excludingOwnerID)
}

func (q *slotQueriesImpl) Stats(ctx context.Context, ownerID uuid.UUID) (*SlotStats, error) {
	counts, err := q.store.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	upcoming, err := q.store.CountStartingAfter(ctx, ownerID, q.clock.Now())
	if err != nil {
		return nil, err
	}

	stats := &SlotStats{
		StatusBreakdown: make(map[string]int, len(slot.AllStatuses())),
		UpcomingEvents:  upcoming,
	}
	for _, st := range slot.AllStatuses() {
		n := counts[st.String()]
		stats.StatusBreakdown[st.String()] = n
		stats.TotalEvents += n
	}
	return stats, nil
}
