package commands

import (
	"context"

	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

// swapLedger is the only writer of swap request status.
type swapLedger struct {
	clock clock.Clock
}

// open records a PENDING request. Callers must already hold both slot locks.
func (l swapLedger) open(ctx context.Context, tx shared.Tx, requesterID, responderID, mySlotID, theirSlotID uuid.UUID) (*swap.Request, error) {
	req, err := swap.NewRequest(requesterID, responderID, mySlotID, theirSlotID, l.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := tx.SwapRequests().Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// resolve moves req out of PENDING. A request that another transaction
// already resolved yields ErrAlreadyResolved.
func (l swapLedger) resolve(ctx context.Context, tx shared.Tx, req *swap.Request, reason swap.Reason) error {
	if err := req.Resolve(reason, l.clock.Now()); err != nil {
		return err
	}
	ok, err := tx.SwapRequests().Resolve(ctx, req)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrAlreadyResolved
	}
	return nil
}
