package repository

import (
	"context"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID(), u.Name().Value(), u.Email().Value(), u.PasswordHash(), u.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr(nil, infra.ClassifyPgErr(err), "failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var (
		id                         uuid.UUID
		name, stored, passwordHash string
		createdAt                  time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE lower(email) = lower($1)`, email).
		Scan(&id, &name, &stored, &passwordHash, &createdAt)
	if err != nil {
		kind := infra.ClassifyPgErr(err)
		if kind == infra.KindNotFound {
			return nil, infra.WrapRepoErr(nil, kind, "user not found", err)
		}
		return nil, infra.WrapRepoErr(nil, kind, "failed to find user by email", err)
	}
	return user.Reconstruct(id, name, stored, passwordHash, createdAt), nil
}
