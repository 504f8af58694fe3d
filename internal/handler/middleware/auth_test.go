package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"slot-swapper/internal/pkg/jwt"
	"slot-swapper/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type validatorFunc func(ctx context.Context, token string) (uuid.UUID, error)

func (f validatorFunc) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	return f(ctx, token)
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	newRouter := func(v validatorFunc) *gin.Engine {
		r := gin.New()
		r.GET("/me", NewAuthMiddleware(v).RequireAuth(), func(c *gin.Context) {
			id, _ := GetUserID(c)
			c.String(http.StatusOK, id.String())
		})
		return r
	}

	cases := []struct {
		name       string
		header     string
		err        error
		wantStatus int
	}{
		{name: "valid bearer", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "scheme is case-insensitive", header: "bearer good", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", err: jwt.ErrInvalidToken, wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer old", err: jwt.ErrExpiredToken, wantStatus: http.StatusUnauthorized},
		{name: "deleted user", header: "Bearer gone", err: usecase.ErrUnknownBearer, wantStatus: http.StatusUnauthorized},
		{name: "storage failure", header: "Bearer good", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(func(_ context.Context, _ string) (uuid.UUID, error) {
				if tc.err != nil {
					return uuid.Nil, tc.err
				}
				return userID, nil
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}
