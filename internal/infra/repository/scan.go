package repository

import (
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const slotColumns = `id, owner_id, title, start_time, end_time, status, created_at, updated_at`

const requestColumns = `id, requester_id, responder_id, my_slot_id, their_slot_id, status, resolution_reason, created_at, resolved_at`

func scanSlot(row pgx.Row) (*slot.Slot, error) {
	var (
		id, ownerID                      uuid.UUID
		title, status                    string
		start, end, createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &ownerID, &title, &start, &end, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	st, err := slot.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return slot.Reconstruct(id, ownerID, title, start, end, st, createdAt, updatedAt), nil
}

func scanRequest(row pgx.Row) (*swap.Request, error) {
	var (
		id, requesterID, responderID, mySlotID, theirSlotID uuid.UUID
		status                                              string
		reason                                              pgtype.Text
		createdAt                                           time.Time
		resolvedAt                                          pgtype.Timestamptz
	)
	err := row.Scan(&id, &requesterID, &responderID, &mySlotID, &theirSlotID, &status, &reason, &createdAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	st, err := swap.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return swap.Reconstruct(id, requesterID, responderID, mySlotID, theirSlotID, st,
		swap.Reason(reason.String), createdAt, pgconv.TimePtrFromPgtype(resolvedAt)), nil
}

func collectRequests(rows pgx.Rows) ([]*swap.Request, error) {
	defer rows.Close()
	out := make([]*swap.Request, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
