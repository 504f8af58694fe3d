package repository

import (
	"context"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/db"

	"github.com/google/uuid"
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO slots (`+slotColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID(), s.OwnerID(), s.Title(), s.StartTime(), s.EndTime(), s.Status().String(), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr(nil, infra.ClassifyPgErr(err), "failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	s, err := scanSlot(r.db.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id))
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.ClassifyPgErr(err), "failed to find slot", err)
	}
	return s, nil
}

func (r *SlotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	s, err := scanSlot(r.db.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.ClassifyPgErr(err), "failed to find slot", err)
	}
	return s, nil
}

func (r *SlotRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*slot.Slot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+slotColumns+` FROM slots WHERE owner_id = $1 ORDER BY start_time, id`, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list slots", err)
	}
	defer rows.Close()

	out := make([]*slot.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to scan slot", err)
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list slots", err)
	}
	return out, nil
}

func (r *SlotRepository) UpdateDetails(ctx context.Context, s *slot.Slot) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE slots SET title = $2, start_time = $3, end_time = $4, updated_at = $5
		 WHERE id = $1 AND owner_id = $6 AND status <> 'SWAP_PENDING'`,
		s.ID(), s.Title(), s.StartTime(), s.EndTime(), s.UpdatedAt(), s.OwnerID())
	if err != nil {
		return false, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to update slot", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteUnlocked relies on ON DELETE CASCADE to drop requests that reference the slot.
func (r *SlotRepository) DeleteUnlocked(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM slots WHERE id = $1 AND owner_id = $2 AND status <> 'SWAP_PENDING'`, id, ownerID)
	if err != nil {
		return false, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to delete slot", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next slot.Status, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE slots SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, expected.String(), next.String(), at)
	if err != nil {
		return false, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to update slot status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) TransferOwnership(ctx context.Context, id, from, to uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE slots SET owner_id = $3, updated_at = $4 WHERE id = $1 AND owner_id = $2`,
		id, from, to, at)
	if err != nil {
		return false, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to transfer slot", err)
	}
	return tag.RowsAffected() == 1, nil
}
