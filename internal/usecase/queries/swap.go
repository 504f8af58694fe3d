package queries

//go:generate mockgen -source=swap.go -destination=../../mock/queries/swap.go -package=queriesmock

import (
	"context"

	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type SwapRequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SwapRequestView, error)
	ListByResponder(ctx context.Context, userID uuid.UUID) ([]*SwapRequestView, error)
	ListByRequester(ctx context.Context, userID uuid.UUID) ([]*SwapRequestView, error)
}

type SwapQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SwapRequestView, error)
	ListFor(ctx context.Context, userID uuid.UUID) (*SwapRequestLists, error)
}

type swapQueriesImpl struct {
	store SwapRequestReadStore
}

func NewSwapQueries(store SwapRequestReadStore) SwapQueries {
	return &swapQueriesImpl{store: store}
}

func (q *swapQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SwapRequestView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSwapRequestNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListFor loads both directions concurrently. Incoming means the user was
// the responder when the request was created.
func (q *swapQueriesImpl) ListFor(ctx context.Context, userID uuid.UUID) (*SwapRequestLists, error) {
	var incoming, outgoing []*SwapRequestView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incoming, err = q.store.ListByResponder(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		outgoing, err = q.store.ListByRequester(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, v := range incoming {
		incoming[i] = v.fromResponderSide()
	}
	if incoming == nil {
		incoming = []*SwapRequestView{}
	}
	if outgoing == nil {
		outgoing = []*SwapRequestView{}
	}
	return &SwapRequestLists{Incoming: incoming, Outgoing: outgoing}, nil
}

// fromResponderSide returns a copy with the slots swapped so MySlot is the
// responder's slot.
func (v *SwapRequestView) fromResponderSide() *SwapRequestView {
	out := *v
	out.MySlot, out.TheirSlot = v.TheirSlot, v.MySlot
	return &out
}
