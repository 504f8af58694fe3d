package repository

import (
	"context"
	"time"

	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/db"
	"slot-swapper/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SwapRequestRepository struct {
	db db.DBTX
}

func NewSwapRequestRepository(dbtx db.DBTX) *SwapRequestRepository {
	return &SwapRequestRepository{db: dbtx}
}

func (r *SwapRequestRepository) Create(ctx context.Context, req *swap.Request) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO swap_requests (`+requestColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.ID(), req.RequesterID(), req.ResponderID(), req.MySlotID(), req.TheirSlotID(),
		req.Status().String(), pgconv.OptionalText(string(req.Reason())), req.CreatedAt(), req.ResolvedAt())
	if err != nil {
		return infra.WrapRepoErr(nil, infra.ClassifyPgErr(err), "failed to create swap request", err)
	}
	return nil
}

func (r *SwapRequestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*swap.Request, error) {
	req, err := scanRequest(r.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM swap_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.ClassifyPgErr(err), "failed to find swap request", err)
	}
	return req, nil
}

func (r *SwapRequestRepository) Resolve(ctx context.Context, req *swap.Request) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE swap_requests SET status = $2, resolution_reason = $3, resolved_at = $4
		 WHERE id = $1 AND status = 'PENDING'`,
		req.ID(), req.Status().String(), pgconv.OptionalText(string(req.Reason())), req.ResolvedAt())
	if err != nil {
		return false, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to resolve swap request", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SwapRequestRepository) ListPendingBySlots(ctx context.Context, slotIDs []uuid.UUID, excludeID uuid.UUID) ([]*swap.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+` FROM swap_requests
		 WHERE status = 'PENDING' AND id <> $2
		   AND (my_slot_id = ANY($1) OR their_slot_id = ANY($1))
		 ORDER BY created_at, id
		 FOR UPDATE`,
		slotIDs, excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list pending swap requests", err)
	}
	out, err := collectRequests(rows)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to scan swap request", err)
	}
	return out, nil
}

func (r *SwapRequestRepository) ListPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]*swap.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+` FROM swap_requests
		 WHERE status = 'PENDING' AND created_at < $1
		 ORDER BY created_at, id
		 LIMIT $2`,
		before, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list stale swap requests", err)
	}
	out, err := collectRequests(rows)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to scan swap request", err)
	}
	return out, nil
}
