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

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary List own slots
// @Description List the caller's slots ordered by start time
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param status query string false "BUSY, SWAPPABLE or SWAP_PENDING"
// @Param start_date query string false "RFC3339 lower bound on start_time"
// @Param end_date query string false "RFC3339 upper bound on end_time"
// @Param search query string false "Case-insensitive title search, at least 3 characters"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /events [get]
func (h *SlotHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	var query reqdto.ListSlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	views, err := h.q.ListOwn(c.Request.Context(), userID, query.ToFilter())
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

// @Summary Slot statistics
// @Description Count the caller's slots by status
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SlotStatsResponse
// @Failure 401 {object} httperr.Response
// @Router /events/stats [get]
func (h *SlotHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	stats, err := h.q.Stats(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromSlotStats(stats)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create slot
// @Description Create a slot owned by the caller. It starts BUSY unless status is SWAPPABLE.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Slot"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /events [post]
func (h *SlotHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.cmds.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSlot(s))
}

// @Summary Update slot
// @Description Update title, time range or status of an own slot
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.UpdateSlotRequest true "Fields to change"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /events/{id} [put]
func (h *SlotHandler) Update(c *gin.Context) {
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
	var req reqdto.UpdateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	s, err := h.cmds.Update(c.Request.Context(), id, userID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlot(s))
}

// @Summary Delete slot
// @Description Delete an own slot that is not locked by a pending swap
// @Tags events
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /events/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
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
	if err = h.cmds.Delete(c.Request.Context(), id, userID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
