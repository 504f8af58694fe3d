package slot

import (
	"bytes"
	"time"

	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

type Slot struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	title     Title
	timeRange TimeRange
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewSlot creates a BUSY slot owned by ownerID.
func NewSlot(ownerID uuid.UUID, title string, start, end, now time.Time) (*Slot, error) {
	t, err := NewTitle(title)
	if err != nil {
		return nil, err
	}
	tr, err := NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate slot id")
	}
	return &Slot{
		id:        id,
		ownerID:   ownerID,
		title:     t,
		timeRange: tr,
		status:    StatusBusy,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a slot from storage without validation.
func Reconstruct(id, ownerID uuid.UUID, title string, start, end time.Time, status Status, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		id:        id,
		ownerID:   ownerID,
		title:     Title{value: title},
		timeRange: TimeRange{start: start, end: end},
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) OwnerID() uuid.UUID    { return s.ownerID }
func (s *Slot) Title() string         { return s.title.String() }
func (s *Slot) TimeRange() TimeRange  { return s.timeRange }
func (s *Slot) StartTime() time.Time  { return s.timeRange.Start() }
func (s *Slot) EndTime() time.Time    { return s.timeRange.End() }
func (s *Slot) Status() Status        { return s.status }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Slot) IsLocked() bool        { return s.status == StatusSwapPending }

// MarkSwappable applies the owner-initiated BUSY -> SWAPPABLE edge.
func (s *Slot) MarkSwappable(now time.Time) error {
	if s.status != StatusBusy {
		return errs.Wrap(errs.ErrInvalidTransition, "only BUSY slots can become SWAPPABLE, current status "+s.status.String())
	}
	s.status = StatusSwappable
	s.updatedAt = now
	return nil
}

// Reschedule replaces the title and time range of a slot that is not locked.
func (s *Slot) Reschedule(title string, start, end, now time.Time) error {
	if s.IsLocked() {
		return errs.ErrSlotLocked
	}
	t, err := NewTitle(title)
	if err != nil {
		return err
	}
	tr, err := NewTimeRange(start, end)
	if err != nil {
		return err
	}
	s.title = t
	s.timeRange = tr
	s.updatedAt = now
	return nil
}

func (s *Slot) EnsureDeletable() error {
	if s.IsLocked() {
		return errs.ErrSlotLocked
	}
	return nil
}

// LockOrder returns a and b sorted ascending by their byte representation.
func LockOrder(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}
