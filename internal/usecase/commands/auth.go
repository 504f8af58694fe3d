package commands

//go:generate mockgen -source=auth.go -destination=../../mock/commands/auth.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-swapper/internal/domain/auth"
	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/jwt"
	"slot-swapper/internal/pkg/password"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTokenGeneration = errs.New("token generation failed")
)

const TokenTypeBearer = "bearer"

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*user.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	reg, err := auth.NewRegistration(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(reg.Credentials().Password().Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	u, err := user.NewUser(reg.Name(), reg.Credentials().Email(), hash, a.clock.Now())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, ferr := tx.Users().FindByEmail(ctx, u.Email().Value())
		switch {
		case ferr == nil:
			return errs.ErrEmailTaken
		case !infra.IsKind(ferr, infra.KindNotFound):
			return ferr
		}
		cerr := tx.Users().Create(ctx, u)
		if infra.IsKind(cerr, infra.KindDuplicateKey) {
			return errs.ErrEmailTaken
		}
		return cerr
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", u.ID())
	return u, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(in.Email, in.Password)
	if err != nil {
		// Same error as a wrong password to prevent user enumeration
		return nil, errs.ErrInvalidCredentials
	}

	var found *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		found, ferr = tx.Users().FindByEmail(ctx, credentials.Email().Value())
		return ferr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err = password.Verify(found.PasswordHash(), credentials.Password().Value()); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			slog.Warn("password comparison failed", "user_id", found.ID(), "error", err.Error())
		}
		return nil, errs.ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(found.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      found.ID(),
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}
