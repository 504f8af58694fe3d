package commands

//go:generate mockgen -source=slot.go -destination=../../mock/commands/slot.go -package=commandsmock

import (
	"context"
	"time"

	"slot-swapper/internal/domain/access"
	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/patch"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSlotInput struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    *string
}

// UpdateSlotInput carries a partial update; nil fields keep their current value.
type UpdateSlotInput struct {
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

type SlotCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateSlotInput) (*slot.Slot, error)
	Update(ctx context.Context, slotID, actorID uuid.UUID, in UpdateSlotInput) (*slot.Slot, error)
	SetSwappable(ctx context.Context, slotID, actorID uuid.UUID) (*slot.Slot, error)
	Delete(ctx context.Context, slotID, actorID uuid.UUID) error
}

type slotCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSlotCommands(uow shared.UnitOfWork, clk clock.Clock) SlotCommands {
	return &slotCommandsImpl{uow: uow, clock: clk}
}

func (c *slotCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, in CreateSlotInput) (*slot.Slot, error) {
	initial, err := requestedStatus(in.Status, slot.StatusBusy)
	if err != nil {
		return nil, err
	}
	if initial != slot.StatusBusy && initial != slot.StatusSwappable {
		return nil, errs.Wrap(errs.ErrInvalidTransition, "new slots start BUSY or SWAPPABLE")
	}

	var created *slot.Slot
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, verr := slot.NewSlot(ownerID, in.Title, in.StartTime, in.EndTime, c.clock.Now())
		if verr != nil {
			return verr
		}
		existing, lerr := tx.Slots().ListByOwner(ctx, ownerID)
		if lerr != nil {
			return lerr
		}
		if oerr := slot.CheckOverlap(s.TimeRange(), existing, uuid.Nil); oerr != nil {
			return oerr
		}
		if cerr := tx.Slots().Create(ctx, s); cerr != nil {
			return cerr
		}
		if initial == slot.StatusSwappable {
			if serr := c.setSwappable(ctx, tx, s); serr != nil {
				return serr
			}
		}
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *slotCommandsImpl) Update(ctx context.Context, slotID, actorID uuid.UUID, in UpdateSlotInput) (*slot.Slot, error) {
	var updated *slot.Slot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := c.loadOwned(ctx, tx, slotID, actorID)
		if err != nil {
			return err
		}

		target, err := requestedStatus(in.Status, s.Status())
		if err != nil {
			return err
		}
		if target != s.Status() && !(s.Status() == slot.StatusBusy && target == slot.StatusSwappable) {
			return errs.Wrap(errs.ErrInvalidTransition, s.Status().String()+" -> "+target.String()+" is not an owner transition")
		}

		if patch.Changes(in.Title, s.Title(), patch.Equal[string]) ||
			patch.Changes(in.StartTime, s.StartTime(), time.Time.Equal) ||
			patch.Changes(in.EndTime, s.EndTime(), time.Time.Equal) {
			title := patch.Coalesce(in.Title, s.Title())
			start := patch.Coalesce(in.StartTime, s.StartTime())
			end := patch.Coalesce(in.EndTime, s.EndTime())
			if err = c.reschedule(ctx, tx, s, title, start, end); err != nil {
				return err
			}
		}

		if target != s.Status() {
			if err = c.setSwappable(ctx, tx, s); err != nil {
				return err
			}
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *slotCommandsImpl) SetSwappable(ctx context.Context, slotID, actorID uuid.UUID) (*slot.Slot, error) {
	var updated *slot.Slot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := c.loadOwned(ctx, tx, slotID, actorID)
		if err != nil {
			return err
		}
		if err = c.setSwappable(ctx, tx, s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *slotCommandsImpl) Delete(ctx context.Context, slotID, actorID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := c.loadOwned(ctx, tx, slotID, actorID)
		if err != nil {
			return err
		}
		if err = s.EnsureDeletable(); err != nil {
			return err
		}
		ok, err := tx.Slots().DeleteUnlocked(ctx, slotID, actorID)
		if err != nil {
			return err
		}
		if !ok {
			return c.writeRejected(ctx, tx, slotID, actorID)
		}
		return nil
	})
}

// loadOwned reads the slot FOR UPDATE so the owner check holds until commit.
func (c *slotCommandsImpl) loadOwned(ctx context.Context, tx shared.Tx, slotID, actorID uuid.UUID) (*slot.Slot, error) {
	s, err := tx.Slots().FindByIDForUpdate(ctx, slotID)
	if err != nil {
		return nil, translateNotFound(err, errs.ErrSlotNotFound)
	}
	if err = access.AuthorizeOwner(s, actorID); err != nil {
		return nil, err
	}
	return s, nil
}

// writeRejected explains why a guarded write matched no row.
func (c *slotCommandsImpl) writeRejected(ctx context.Context, tx shared.Tx, slotID, actorID uuid.UUID) error {
	s, err := tx.Slots().FindByID(ctx, slotID)
	if err != nil {
		return translateNotFound(err, errs.ErrSlotNotFound)
	}
	if err = access.AuthorizeOwner(s, actorID); err != nil {
		return err
	}
	return errs.ErrSlotLocked
}

func (c *slotCommandsImpl) reschedule(ctx context.Context, tx shared.Tx, s *slot.Slot, title string, start, end time.Time) error {
	if err := s.Reschedule(title, start, end, c.clock.Now()); err != nil {
		return err
	}
	existing, err := tx.Slots().ListByOwner(ctx, s.OwnerID())
	if err != nil {
		return err
	}
	if err = slot.CheckOverlap(s.TimeRange(), existing, s.ID()); err != nil {
		return err
	}
	ok, err := tx.Slots().UpdateDetails(ctx, s)
	if err != nil {
		return err
	}
	if !ok {
		return c.writeRejected(ctx, tx, s.ID(), s.OwnerID())
	}
	return nil
}

// setSwappable applies BUSY -> SWAPPABLE through a compare-and-set so a
// concurrent lock on the same slot cannot be overwritten.
func (c *slotCommandsImpl) setSwappable(ctx context.Context, tx shared.Tx, s *slot.Slot) error {
	if err := s.MarkSwappable(c.clock.Now()); err != nil {
		return err
	}
	ok, err := tx.Slots().CompareAndSetStatus(ctx, s.ID(), slot.StatusBusy, slot.StatusSwappable, s.UpdatedAt())
	if err != nil {
		return err
	}
	if !ok {
		return errs.Wrap(errs.ErrInvalidTransition, "slot is no longer BUSY")
	}
	return nil
}

func requestedStatus(raw *string, fallback slot.Status) (slot.Status, error) {
	if raw == nil || *raw == "" {
		return fallback, nil
	}
	return slot.ParseStatus(*raw)
}
