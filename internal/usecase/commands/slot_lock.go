package commands

import (
	"context"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

// lockSlot moves a slot from expected to SWAP_PENDING in one compare-and-set.
// It reports false, without writing, when the slot is in any other state.
func lockSlot(ctx context.Context, repo shared.SlotRepository, id uuid.UUID, expected slot.Status, at time.Time) (bool, error) {
	return repo.CompareAndSetStatus(ctx, id, expected, slot.StatusSwapPending, at)
}

// unlockSlot releases a SWAP_PENDING slot into next.
func unlockSlot(ctx context.Context, repo shared.SlotRepository, id uuid.UUID, next slot.Status, at time.Time) error {
	if !slot.StatusSwapPending.CanTransitionTo(next) {
		return errs.Wrap(errs.ErrInvalidTransition, "cannot unlock into "+next.String())
	}
	ok, err := repo.CompareAndSetStatus(ctx, id, slot.StatusSwapPending, next, at)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Wrap(errInvariantBroken, "slot "+id.String()+" was not SWAP_PENDING")
	}
	return nil
}

// lockPair locks both slots in ascending id order. On failure every lock
// already taken is released in reverse order and ErrSlotUnavailable is returned.
func lockPair(ctx context.Context, repo shared.SlotRepository, a, b uuid.UUID, at time.Time) error {
	first, second := slot.LockOrder(a, b)
	held := make([]uuid.UUID, 0, 2)

	for _, id := range []uuid.UUID{first, second} {
		ok, err := lockSlot(ctx, repo, id, slot.StatusSwappable, at)
		if err == nil && ok {
			held = append(held, id)
			continue
		}
		if relErr := releaseHeld(ctx, repo, held, at); relErr != nil {
			return relErr
		}
		if err != nil {
			return err
		}
		return errs.ErrSlotUnavailable
	}
	return nil
}

// unlockPair releases both slots into next in ascending id order.
func unlockPair(ctx context.Context, repo shared.SlotRepository, a, b uuid.UUID, next slot.Status, at time.Time) error {
	first, second := slot.LockOrder(a, b)
	if err := unlockSlot(ctx, repo, first, next, at); err != nil {
		return err
	}
	return unlockSlot(ctx, repo, second, next, at)
}

func releaseHeld(ctx context.Context, repo shared.SlotRepository, held []uuid.UUID, at time.Time) error {
	for i := len(held) - 1; i >= 0; i-- {
		if err := unlockSlot(ctx, repo, held[i], slot.StatusSwappable, at); err != nil {
			return err
		}
	}
	return nil
}
