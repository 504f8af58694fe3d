package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"slot-swapper/internal/domain/slot"
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

type SlotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSlotCommands
	mockQueries  *queriesmock.MockSlotQueries
	userID       uuid.UUID
	start        time.Time
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSlotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.userID = uuid.New()
	s.start = time.Date(2030, 1, 6, 9, 0, 0, 0, time.UTC)

	h := api.NewSlotHandler(s.mockCommands, s.mockQueries)
	events := s.router.Group("/events", withUser(s.userID))
	events.GET("", h.List)
	events.POST("", h.Create)
	events.GET("/stats", h.Stats)
	events.PUT("/:id", h.Update)
	events.DELETE("/:id", h.Delete)
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

func (s *SlotHandlerTestSuite) newSlot(title string) *slot.Slot {
	sl, err := slot.NewSlot(s.userID, title, s.start, s.start.Add(time.Hour), time.Now())
	s.Require().NoError(err)
	return sl
}

func (s *SlotHandlerTestSuite) TestCreate() {
	url := "/events"
	reqBody := map[string]any{
		"title":      "Team standup",
		"start_time": s.start.Format(time.RFC3339),
		"end_time":   s.start.Add(time.Hour).Format(time.RFC3339),
	}

	s.Run("success: returns 201 with a BUSY slot", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), s.userID, commands.CreateSlotInput{
				Title:     "Team standup",
				StartTime: s.start,
				EndTime:   s.start.Add(time.Hour),
			}).
			Return(s.newSlot("Team standup"), nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.SlotResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("BUSY", response.Status)
		s.Equal(s.userID, response.OwnerID)
	})

	s.Run("error: 400 Bad Request on binding errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing title", mutate: testutil.Field("title", nil)},
			{name: "missing start_time", mutate: testutil.Field("start_time", nil)},
			{name: "malformed end_time", mutate: testutil.Field("end_time", "tomorrow")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				testutil.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid-request")
			})
		}
	})

	s.Run("error: overlap returns 400 with the conflicting slots", func() {
		conflictID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), s.userID, gomock.Any()).
			Return(nil, &slot.OverlapError{Conflicts: []slot.Conflict{{ID: conflictID, Title: "Lunch"}}}).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		env := testutil.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "overlap")
		s.Contains(string(env.Detail), conflictID.String())
	})

	s.Run("error: 401 without an authenticated user", func() {
		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "unauthenticated")
	})
}

func (s *SlotHandlerTestSuite) TestUpdate() {
	target := s.newSlot("Team standup")
	url := "/events/" + target.ID().String()
	newTitle := "Retro"

	s.Run("success: passes only the supplied fields", func() {
		s.mockCommands.EXPECT().
			Update(gomock.Any(), target.ID(), s.userID, commands.UpdateSlotInput{Title: &newTitle}).
			Return(target, nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"title": newTitle}, "token")
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedCode   string
		}{
			{name: "locked slot", err: errs.ErrSlotLocked, expectedStatus: http.StatusConflict, expectedCode: "locked"},
			{name: "not owner", err: errs.ErrNotOwner, expectedStatus: http.StatusForbidden, expectedCode: "not-owner"},
			{name: "not found", err: errs.ErrSlotNotFound, expectedStatus: http.StatusNotFound, expectedCode: "slot-not-found"},
			{name: "invalid transition", err: errs.Wrap(errs.ErrInvalidTransition, "SWAPPABLE -> BUSY"), expectedStatus: http.StatusConflict, expectedCode: "invalid-transition"},
			{name: "storage failure", err: errors.New("connection reset"), expectedStatus: http.StatusInternalServerError, expectedCode: "internal"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), target.ID(), s.userID, gomock.Any()).Return(nil, tc.err).Times(1)

				rec := testutil.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"title": newTitle}, "token")
				env := testutil.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
				s.False(env.Error.Retryable)
			})
		}
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPut, "/events/not-a-uuid", map[string]any{"title": newTitle}, "token")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid-request")
	})
}

func (s *SlotHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/events/" + id.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).Return(nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 409 while locked by a pending swap", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).Return(errs.ErrSlotLocked).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusConflict, "locked")
	})
}

func (s *SlotHandlerTestSuite) TestList() {
	s.Run("success: binds query filters", func() {
		views := []*queries.SlotView{{ID: uuid.New(), OwnerID: s.userID, Title: "Team standup", Status: "SWAPPABLE"}}
		s.mockQueries.EXPECT().
			ListOwn(gomock.Any(), s.userID, queries.SlotFilter{Status: "SWAPPABLE", Search: "team"}).
			Return(views, nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/events?status=SWAPPABLE&search=team", nil, "token")

		var response []resdto.SlotResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal("Team standup", response[0].Title)
	})

	s.Run("error: filter validation maps to 400", func() {
		s.mockQueries.EXPECT().ListOwn(gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.Wrap(errs.ErrInvalidInput, "search must be at least 3 characters")).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/events?search=ab", nil, "token")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid-input")
	})
}

func (s *SlotHandlerTestSuite) TestStats() {
	s.mockQueries.EXPECT().Stats(gomock.Any(), s.userID).Return(&queries.SlotStats{
		TotalEvents:     3,
		StatusBreakdown: map[string]int{"BUSY": 2, "SWAPPABLE": 1, "SWAP_PENDING": 0},
		UpcomingEvents:  1,
	}, nil).Times(1)

	rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/events/stats", nil, "token")

	var response resdto.SlotStatsResponse
	testutil.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Equal(3, response.TotalEvents)
	s.Equal(2, response.StatusBreakdown["BUSY"])
}
