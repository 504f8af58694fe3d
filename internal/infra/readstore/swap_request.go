package readstore

import (
	"context"

	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/db"
	"slot-swapper/internal/pkg/pgconv"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const swapRequestViewSelect = `SELECT r.id, r.status, r.resolution_reason, r.created_at, r.resolved_at,
	rq.id, rq.name, rq.email,
	rp.id, rp.name, rp.email,
	ms.id, ms.title, ms.start_time, ms.end_time, ms.status,
	ts.id, ts.title, ts.start_time, ts.end_time, ts.status
FROM swap_requests r
JOIN users rq ON rq.id = r.requester_id
JOIN users rp ON rp.id = r.responder_id
JOIN slots ms ON ms.id = r.my_slot_id
JOIN slots ts ON ts.id = r.their_slot_id`

type SwapRequestReadStore struct {
	db db.DBTX
}

func NewSwapRequestReadStore(dbtx db.DBTX) *SwapRequestReadStore {
	return &SwapRequestReadStore{db: dbtx}
}

func (r *SwapRequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SwapRequestView, error) {
	v, err := scanSwapRequestView(r.db.QueryRow(ctx, swapRequestViewSelect+` WHERE r.id = $1`, id))
	if err != nil {
		kind := infra.ClassifyPgErr(err)
		if kind == infra.KindNotFound {
			return nil, infra.WrapRepoErr(nil, kind, "swap request not found", err)
		}
		return nil, infra.WrapRepoErr(nil, kind, "failed to find swap request", err)
	}
	return v, nil
}

func (r *SwapRequestReadStore) ListByResponder(ctx context.Context, userID uuid.UUID) ([]*queries.SwapRequestView, error) {
	return r.list(ctx, `r.responder_id = $1`, userID)
}

func (r *SwapRequestReadStore) ListByRequester(ctx context.Context, userID uuid.UUID) ([]*queries.SwapRequestView, error) {
	return r.list(ctx, `r.requester_id = $1`, userID)
}

func (r *SwapRequestReadStore) list(ctx context.Context, where string, userID uuid.UUID) ([]*queries.SwapRequestView, error) {
	rows, err := r.db.Query(ctx, swapRequestViewSelect+` WHERE `+where+` ORDER BY r.created_at DESC, r.id DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list swap requests", err)
	}
	defer rows.Close()

	out := make([]*queries.SwapRequestView, 0)
	for rows.Next() {
		v, err := scanSwapRequestView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to scan swap request", err)
		}
		out = append(out, v)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list swap requests", err)
	}
	return out, nil
}

func scanSwapRequestView(row pgx.Row) (*queries.SwapRequestView, error) {
	var (
		v          queries.SwapRequestView
		reason     pgtype.Text
		resolvedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Status, &reason, &v.CreatedAt, &resolvedAt,
		&v.Requester.ID, &v.Requester.Name, &v.Requester.Email,
		&v.Responder.ID, &v.Responder.Name, &v.Responder.Email,
		&v.MySlot.ID, &v.MySlot.Title, &v.MySlot.StartTime, &v.MySlot.EndTime, &v.MySlot.Status,
		&v.TheirSlot.ID, &v.TheirSlot.Title, &v.TheirSlot.StartTime, &v.TheirSlot.EndTime, &v.TheirSlot.Status,
	)
	if err != nil {
		return nil, err
	}
	v.ResolutionReason = pgconv.StringPtrFromPgtype(reason)
	v.ResolvedAt = pgconv.TimePtrFromPgtype(resolvedAt)
	return &v, nil
}
