package commands

//go:generate mockgen -source=swap.go -destination=../../mock/commands/swap.go -package=commandsmock

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"time"

	"slot-swapper/internal/domain/access"
	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

const reaperBatchSize = 100

type SwapCommands interface {
	RequestSwap(ctx context.Context, requesterID, mySlotID, theirSlotID uuid.UUID) (*swap.Request, error)
	Respond(ctx context.Context, requestID, responderID uuid.UUID, accept bool) (*swap.Request, error)
	Cancel(ctx context.Context, requestID, requesterID uuid.UUID) (*swap.Request, error)
	ExpireStale(ctx context.Context, maxAge time.Duration) (int, error)
}

type swapCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	ledger swapLedger
	logger *slog.Logger
}

func NewSwapCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) SwapCommands {
	return &swapCommandsImpl{
		uow:    uow,
		clock:  clk,
		ledger: swapLedger{clock: clk},
		logger: logger,
	}
}

func (c *swapCommandsImpl) RequestSwap(ctx context.Context, requesterID, mySlotID, theirSlotID uuid.UUID) (*swap.Request, error) {
	if mySlotID == theirSlotID {
		return nil, errs.ErrSelfSwap
	}

	var created *swap.Request
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		mySlot, theirSlot, err := c.loadPair(ctx, tx, mySlotID, theirSlotID)
		if err != nil {
			return err
		}
		if err = access.AuthorizeOwner(mySlot, requesterID); err != nil {
			return err
		}
		if err = access.AuthorizeNotOwner(theirSlot, requesterID); err != nil {
			return err
		}
		if err = ensureOffered(mySlot, theirSlot); err != nil {
			return err
		}
		responderID := theirSlot.OwnerID()

		now := c.clock.Now()
		if err = lockPair(ctx, tx.Slots(), mySlotID, theirSlotID, now); err != nil {
			return err
		}

		// Ownership read before the locks may be stale; re-check now that
		// both slots are held.
		mySlot, theirSlot, err = c.loadPair(ctx, tx, mySlotID, theirSlotID)
		if err != nil {
			return err
		}
		if mySlot.OwnerID() != requesterID || theirSlot.OwnerID() != responderID {
			if err = unlockPair(ctx, tx.Slots(), mySlotID, theirSlotID, slot.StatusSwappable, now); err != nil {
				return err
			}
			return errs.ErrSlotUnavailable
		}

		created, err = c.ledger.open(ctx, tx, requesterID, responderID, mySlotID, theirSlotID)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("swap requested",
		"request_id", created.ID(),
		"requester_id", requesterID,
		"responder_id", created.ResponderID())
	return created, nil
}

func (c *swapCommandsImpl) Respond(ctx context.Context, requestID, responderID uuid.UUID, accept bool) (*swap.Request, error) {
	var resolved *swap.Request
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, err := c.loadPending(ctx, tx, requestID)
		if err != nil {
			return err
		}

		theirSlot, err := tx.Slots().FindByID(ctx, req.TheirSlotID())
		if err != nil {
			return translateNotFound(err, errs.ErrSlotNotFound)
		}
		if err = access.AuthorizeOwner(theirSlot, responderID); err != nil {
			return err
		}

		now := c.clock.Now()
		if accept {
			err = c.accept(ctx, tx, req, now)
		} else {
			err = c.release(ctx, tx, req, swap.ReasonRejected, now)
		}
		if err != nil {
			return err
		}
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("swap resolved",
		"request_id", resolved.ID(),
		"status", resolved.Status().String(),
		"responder_id", responderID)
	return resolved, nil
}

func (c *swapCommandsImpl) Cancel(ctx context.Context, requestID, requesterID uuid.UUID) (*swap.Request, error) {
	var resolved *swap.Request
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, err := c.loadPending(ctx, tx, requestID)
		if err != nil {
			return err
		}

		mySlot, err := tx.Slots().FindByID(ctx, req.MySlotID())
		if err != nil {
			return translateNotFound(err, errs.ErrSlotNotFound)
		}
		if err = access.AuthorizeOwner(mySlot, requesterID); err != nil {
			return err
		}

		if err = c.release(ctx, tx, req, swap.ReasonCancelled, c.clock.Now()); err != nil {
			return err
		}
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("swap cancelled", "request_id", resolved.ID(), "requester_id", requesterID)
	return resolved, nil
}

// ExpireStale rejects every request left PENDING longer than maxAge and
// returns how many were expired. Requests are scanned in batches and each
// one is expired in its own transaction so one failure does not hold back
// the rest. Scanning stops at a short batch or a batch that made no progress.
func (c *swapCommandsImpl) ExpireStale(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := c.clock.Now().Add(-maxAge)

	total := 0
	for {
		var stale []*swap.Request
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			stale, err = tx.SwapRequests().ListPendingCreatedBefore(ctx, cutoff, reaperBatchSize)
			return err
		})
		if err != nil {
			return total, err
		}

		expired, err := c.expireBatch(ctx, stale)
		total += expired
		if err != nil || len(stale) < reaperBatchSize || expired == 0 {
			return total, err
		}
	}
}

func (c *swapCommandsImpl) expireBatch(ctx context.Context, stale []*swap.Request) (int, error) {
	expired := 0
	for _, candidate := range stale {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			req, err := c.loadPending(ctx, tx, candidate.ID())
			if err != nil {
				return err
			}
			return c.release(ctx, tx, req, swap.ReasonExpired, c.clock.Now())
		})
		switch {
		case err == nil:
			expired++
		case errs.KindOf(err) == errs.KindConflict || errs.KindOf(err) == errs.KindNotFound:
			// resolved or removed since the scan
		default:
			c.logger.Warn("failed to expire swap request", "request_id", candidate.ID(), "error", err.Error())
		}
	}
	return expired, nil
}

// accept exchanges ownership, frees both slots as BUSY, records the outcome
// and rejects any other pending request that still references either slot.
func (c *swapCommandsImpl) accept(ctx context.Context, tx shared.Tx, req *swap.Request, at time.Time) error {
	requesterID, responderID := req.RequesterID(), req.ResponderID()
	first, second := slot.LockOrder(req.MySlotID(), req.TheirSlotID())
	newOwner := map[uuid.UUID][2]uuid.UUID{
		req.MySlotID():    {requesterID, responderID},
		req.TheirSlotID(): {responderID, requesterID},
	}
	for _, id := range []uuid.UUID{first, second} {
		ok, err := tx.Slots().TransferOwnership(ctx, id, newOwner[id][0], newOwner[id][1], at)
		if err != nil {
			return err
		}
		if !ok {
			return errs.Wrapf(errInvariantBroken, "owner of slot %s changed while locked", id)
		}
	}

	if err := unlockPair(ctx, tx.Slots(), req.MySlotID(), req.TheirSlotID(), slot.StatusBusy, at); err != nil {
		return err
	}
	if err := c.ledger.resolve(ctx, tx, req, swap.ReasonAccepted); err != nil {
		return err
	}
	return c.cascade(ctx, tx, req, at)
}

// cascade rejects other PENDING requests that reference a slot consumed by
// req. Slots of those requests other than req's pair go back to SWAPPABLE.
func (c *swapCommandsImpl) cascade(ctx context.Context, tx shared.Tx, req *swap.Request, at time.Time) error {
	consumed := req.SlotIDs()
	stale, err := tx.SwapRequests().ListPendingBySlots(ctx, consumed[:], req.ID())
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	c.logger.Warn("cascading rejection of stale swap requests",
		"accepted_request_id", req.ID(),
		"count", len(stale))

	var toUnlock []uuid.UUID
	for _, other := range stale {
		err = c.ledger.resolve(ctx, tx, other, swap.ReasonSlotUnavailable)
		if errs.Is(err, errs.ErrAlreadyResolved) {
			continue
		}
		if err != nil {
			return err
		}
		for _, id := range other.SlotIDs() {
			if !req.References(id) {
				toUnlock = append(toUnlock, id)
			}
		}
	}

	for _, id := range sortedUnique(toUnlock) {
		ok, err := tx.Slots().CompareAndSetStatus(ctx, id, slot.StatusSwapPending, slot.StatusSwappable, at)
		if err != nil {
			return err
		}
		if !ok {
			c.logger.Warn("slot of a cascaded request was not locked", "slot_id", id)
		}
	}
	return nil
}

// release returns both slots to SWAPPABLE and closes req as REJECTED.
func (c *swapCommandsImpl) release(ctx context.Context, tx shared.Tx, req *swap.Request, reason swap.Reason, at time.Time) error {
	if err := unlockPair(ctx, tx.Slots(), req.MySlotID(), req.TheirSlotID(), slot.StatusSwappable, at); err != nil {
		return err
	}
	return c.ledger.resolve(ctx, tx, req, reason)
}

func (c *swapCommandsImpl) loadPending(ctx context.Context, tx shared.Tx, requestID uuid.UUID) (*swap.Request, error) {
	req, err := tx.SwapRequests().FindByIDForUpdate(ctx, requestID)
	if err != nil {
		return nil, translateNotFound(err, errs.ErrSwapRequestNotFound)
	}
	if !req.IsPending() {
		return nil, errs.ErrAlreadyResolved
	}
	return req, nil
}

func (c *swapCommandsImpl) loadPair(ctx context.Context, tx shared.Tx, mySlotID, theirSlotID uuid.UUID) (*slot.Slot, *slot.Slot, error) {
	mySlot, err := tx.Slots().FindByID(ctx, mySlotID)
	if err != nil {
		return nil, nil, translateNotFound(err, errs.ErrSlotNotFound)
	}
	theirSlot, err := tx.Slots().FindByID(ctx, theirSlotID)
	if err != nil {
		return nil, nil, translateNotFound(err, errs.ErrSlotNotFound)
	}
	return mySlot, theirSlot, nil
}

// ensureOffered rejects a slot its owner has not published. A slot that is
// SWAP_PENDING is left to the lock, which reports retryable contention.
func ensureOffered(slots ...*slot.Slot) error {
	for _, s := range slots {
		if s.Status() == slot.StatusBusy {
			return errs.Wrapf(errs.ErrSlotNotOffered, "slot %s is BUSY", s.ID())
		}
	}
	return nil
}

func sortedUnique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return out
}
