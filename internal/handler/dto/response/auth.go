package response

import (
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func FromLoginResult(r *commands.LoginResult) LoginResponse {
	return LoginResponse{AccessToken: r.AccessToken, TokenType: r.TokenType, ExpiresIn: int64(r.ExpiresIn.Seconds())}
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Name:      u.Name().Value(),
		Email:     u.Email().Value(),
		CreatedAt: u.CreatedAt(),
	}
}

func FromUserView(v *queries.UserView) UserResponse {
	return UserResponse{ID: v.ID, Name: v.Name, Email: v.Email, CreatedAt: v.CreatedAt}
}
