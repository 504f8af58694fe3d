package readstore

import (
	"context"

	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/db"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	v := &queries.UserView{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Email, &v.CreatedAt)
	if err != nil {
		kind := infra.ClassifyPgErr(err)
		if kind == infra.KindNotFound {
			return nil, infra.WrapRepoErr(nil, kind, "user not found", err)
		}
		return nil, infra.WrapRepoErr(nil, kind, "failed to find user by ID", err)
	}
	return v, nil
}
