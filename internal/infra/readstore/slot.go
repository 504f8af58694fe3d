package readstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/db"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const slotViewSelect = `SELECT s.id, s.owner_id, u.name, s.title, s.start_time, s.end_time, s.status, s.created_at, s.updated_at
FROM slots s JOIN users u ON u.id = s.owner_id`

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

func (r *SlotReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter queries.SlotFilter) ([]*queries.SlotView, error) {
	where, args := filterClause(ownerID, filter)
	rows, err := r.db.Query(ctx, slotViewSelect+` WHERE `+where+` ORDER BY s.start_time, s.id`, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list slots", err)
	}
	return collectSlotViews(rows)
}

func (r *SlotReadStore) ListSwappable(ctx context.Context, excludingOwnerID uuid.UUID) ([]*queries.SlotView, error) {
	rows, err := r.db.Query(ctx,
		slotViewSelect+` WHERE s.status = 'SWAPPABLE' AND s.owner_id <> $1 ORDER BY s.start_time, s.id`,
		excludingOwnerID)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list swappable slots", err)
	}
	return collectSlotViews(rows)
}

func (r *SlotReadStore) CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, count(*) FROM slots WHERE owner_id = $1 GROUP BY status`, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to count slots", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err = rows.Scan(&status, &n); err != nil {
			return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to scan slot count", err)
		}
		counts[status] = n
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to count slots", err)
	}
	return counts, nil
}

func (r *SlotReadStore) CountStartingAfter(ctx context.Context, ownerID uuid.UUID, after time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM slots WHERE owner_id = $1 AND start_time > $2`, ownerID, after).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to count upcoming slots", err)
	}
	return n, nil
}

func filterClause(ownerID uuid.UUID, f queries.SlotFilter) (string, []any) {
	conds := []string{"s.owner_id = $1"}
	args := []any{ownerID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.Status != "" {
		add("s.status = ?", f.Status)
	}
	if f.StartFrom != nil {
		add("s.start_time >= ?", *f.StartFrom)
	}
	if f.EndBefore != nil {
		add("s.end_time <= ?", *f.EndBefore)
	}
	if f.Search != "" {
		add("s.title ILIKE ?", "%"+escapeLike(f.Search)+"%")
	}
	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func collectSlotViews(rows pgx.Rows) ([]*queries.SlotView, error) {
	defer rows.Close()
	out := make([]*queries.SlotView, 0)
	for rows.Next() {
		v := &queries.SlotView{}
		err := rows.Scan(&v.ID, &v.OwnerID, &v.OwnerName, &v.Title, &v.StartTime, &v.EndTime, &v.Status, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to scan slot", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(nil, infra.KindDBFailure, "failed to list slots", err)
	}
	return out, nil
}
