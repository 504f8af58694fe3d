package api

import (
	"net/http"

	reqdto "slot-swapper/internal/handler/dto/request"
	resdto "slot-swapper/internal/handler/dto/response"
	"slot-swapper/internal/handler/httperr"
	"slot-swapper/internal/handler/middleware"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SwapHandler struct {
	cmds      commands.SwapCommands
	q         queries.SwapQueries
	slotQuery queries.SlotQueries
}

func NewSwapHandler(cmds commands.SwapCommands, q queries.SwapQueries, slotQuery queries.SlotQueries) *SwapHandler {
	return &SwapHandler{cmds: cmds, q: q, slotQuery: slotQuery}
}

// @Summary List swappable slots
// @Description List SWAPPABLE slots owned by other users
// @Tags swap
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SlotResponse
// @Failure 401 {object} httperr.Response
// @Router /swap/swappable-slots [get]
func (h *SwapHandler) SwappableSlots(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	views, err := h.slotQuery.ListSwappable(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromSlotViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Request a swap
// @Description Offer one of the caller's SWAPPABLE slots for another user's SWAPPABLE slot. Both slots are locked until the request is resolved.
// @Tags swap
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSwapRequest true "Slots to exchange"
// @Success 201 {object} resdto.SwapRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /swap/swap-request [post]
func (h *SwapHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.RequestSwap(c.Request.Context(), userID, req.MySlotID, req.TheirSlotID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithView(c, http.StatusCreated, created.ID())
}

// @Summary List swap requests
// @Description List requests the caller received and sent. In incoming items my_slot is the caller's slot.
// @Tags swap
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SwapRequestListsResponse
// @Failure 401 {object} httperr.Response
// @Router /swap/requests [get]
func (h *SwapHandler) ListRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	lists, err := h.q.ListFor(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromSwapRequestLists(lists)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Respond to a swap request
// @Description Accept or reject a pending request addressed to the caller
// @Tags swap
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Swap request ID"
// @Param request body reqdto.SwapResponseRequest true "Decision"
// @Success 200 {object} resdto.SwapRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /swap/swap-response/{id} [post]
func (h *SwapHandler) Respond(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.SwapResponseRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	resolved, err := h.cmds.Respond(c.Request.Context(), id, userID, *req.Accept)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithView(c, http.StatusOK, resolved.ID())
}

// @Summary Cancel a swap request
// @Description Withdraw a pending request the caller sent. Both slots become SWAPPABLE again.
// @Tags swap
// @Produce json
// @Security BearerAuth
// @Param id path string true "Swap request ID"
// @Success 200 {object} resdto.SwapRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /swap/swap-request/{id}/cancel [post]
func (h *SwapHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	cancelled, err := h.cmds.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithView(c, http.StatusOK, cancelled.ID())
}

func (h *SwapHandler) respondWithView(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load swap request", nil)
		return
	}
	res, err := resdto.FromSwapRequestView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
