package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/handler/api"
	resdto "slot-swapper/internal/handler/dto/response"
	commandsmock "slot-swapper/internal/mock/commands"
	queriesmock "slot-swapper/internal/mock/queries"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/testutil"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	userID       uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.GET("/auth/me", withUser(s.userID), s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// withUser stands in for the auth middleware when a bearer header is present.
func withUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", id)
		}
		c.Next()
	}
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := map[string]any{"name": "Alice", "email": "alice@example.com", "password": "secret1"}

	newUser := func(name, email string) *user.User {
		n, _ := user.NewName(name)
		e, _ := user.NewEmail(email)
		u, _ := user.NewUser(n, e, "hash", time.Now())
		return u
	}

	s.Run("success: returns 201 with the created user", func() {
		s.mockCommands.EXPECT().
			Register(gomock.Any(), commands.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"}).
			Return(newUser("Alice", "alice@example.com"), nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.UserResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("alice@example.com", response.Email)
		s.Equal("Alice", response.Name)
	})

	s.Run("error: 400 Bad Request on binding errors", func() {
		cases := []testCaseAuth{
			{name: "missing name", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "missing email", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary invalid (5 chars)", mutate: testutil.Field("password", strings.Repeat("a", 5)), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				testutil.AssertErrorResponse(s.T(), rec, tc.expectCode, "invalid-request")
			})
		}
	})

	s.Run("error: duplicate email maps to 400 email-taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errs.ErrEmailTaken).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "email-taken")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := map[string]any{"email": "alice@example.com", "password": "secret1"}

	s.Run("success: returns 200 with a bearer token", func() {
		s.mockCommands.EXPECT().
			Login(gomock.Any(), commands.LoginInput{Email: "alice@example.com", Password: "secret1"}).
			Return(&commands.LoginResult{UserID: s.userID, AccessToken: "test-jwt-token", TokenType: commands.TokenTypeBearer, ExpiresIn: 30 * time.Minute}, nil).
			Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Equal("bearer", response.TokenType)
		s.Equal(int64(1800), response.ExpiresIn)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		cases := []testCaseAuth{
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty email", mutate: testutil.Field("email", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				testutil.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{name: "invalid credentials", commandsError: errs.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedCode: "invalid-credentials"},
			{name: "token generation failure", commandsError: errs.Mark(errors.New("signing failed"), commands.ErrTokenGeneration), expectedStatus: http.StatusInternalServerError, expectedCode: "internal"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				env := testutil.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
				s.NotContains(env.Error.Message, "signing failed")
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the current user", func() {
		view := &queries.UserView{ID: s.userID, Name: "Alice", Email: "alice@example.com", CreatedAt: time.Now()}
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(view, nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response resdto.UserResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.userID, response.ID)
	})

	s.Run("error: 401 without an authenticated user", func() {
		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "unauthenticated")
	})

	s.Run("error: 404 when the user no longer exists", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(nil, errs.ErrUserNotFound).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "user-not-found")
	})
}
