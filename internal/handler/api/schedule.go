package api

import (
	"net/http"
	"strconv"
	"time"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScheduleHandler serves the day timeline, the day bulletin and staff holidays.
type ScheduleHandler struct {
	cmds commands.SchedulingCommands
	q    queries.ScheduleQueries
	loc  *time.Location
}

func NewScheduleHandler(cmds commands.SchedulingCommands, q queries.ScheduleQueries, loc *time.Location) *ScheduleHandler {
	return &ScheduleHandler{cmds: cmds, q: q, loc: loc}
}

// @Summary Check placement
// @Description Advisory check whether [start, end) can be booked for a staff member
// @Tags schedule
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param staff_id query string true "Staff ID"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Param exclude query string false "Appointment ID to ignore, used while dragging"
// @Success 200 {object} resdto.PlacementResponse
// @Failure 400 {object} httperr.Response
// @Router /schedule/placement [get]
func (h *ScheduleHandler) Placement(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		invalidParam(c, err, "Invalid staff_id")
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		invalidParam(c, err, "Invalid start")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		invalidParam(c, err, "Invalid end")
		return
	}
	var exclude *uuid.UUID
	if v := c.Query("exclude"); v != "" {
		id, perr := uuid.Parse(v)
		if perr != nil {
			invalidParam(c, perr, "Invalid exclude")
			return
		}
		exclude = &id
	}
	view, err := h.q.CheckPlacement(c.Request.Context(), shopID, staffID, start, end, exclude)
	if err != nil {
		respondError(c, err, "Invalid placement query")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPlacementView(view))
}

// @Summary Free slots
// @Description Gaps in a staff member's day long enough to offer
// @Tags schedule
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param staff_id query string true "Staff ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.FreeSlotResponse
// @Failure 400 {object} httperr.Response
// @Router /schedule/free-slots [get]
func (h *ScheduleHandler) FreeSlots(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		invalidParam(c, err, "Invalid staff_id")
		return
	}
	slots, err := h.q.FreeSlots(c.Request.Context(), shopID, staffID, c.Query("date"))
	if err != nil {
		respondError(c, err, "Invalid free slot query")
		return
	}
	c.JSON(http.StatusOK, gin.H{"free_slots": resdto.FromFreeSlots(slots)})
}

// @Summary Day board
// @Description Per-staff rows of the day with card positions and free slots
// @Tags schedule
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DayBoardResponse
// @Failure 400 {object} httperr.Response
// @Router /schedule/board [get]
func (h *ScheduleHandler) Board(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	board, err := h.q.DayBoard(c.Request.Context(), shopID, c.Query("date"))
	if err != nil {
		respondError(c, err, "Invalid board query")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDayBoardView(board))
}

// @Summary Day bulletin
// @Description Notes posted for a business day, oldest first
// @Tags schedule
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.NoteResponse
// @Failure 400 {object} httperr.Response
// @Router /schedule/bulletin [get]
func (h *ScheduleHandler) Bulletin(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	notes, err := h.q.Bulletin(c.Request.Context(), shopID, c.Query("date"))
	if err != nil {
		respondError(c, err, "Invalid bulletin query")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": resdto.FromNoteViews(notes)})
}

// @Summary Post note
// @Description Append a note to a business day's bulletin
// @Tags schedule
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param request body reqdto.PostNoteRequest true "Post note request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /schedule/bulletin [post]
func (h *ScheduleHandler) PostNote(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	var req reqdto.PostNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err, "Invalid request")
		return
	}
	date, err := pgconv.ParseDateKey(req.Date, h.loc)
	if err != nil {
		invalidParam(c, err, "Invalid date")
		return
	}
	id, err := h.cmds.PostNote(c.Request.Context(), shopID, date, req.Content)
	if err != nil {
		respondError(c, err, "Post note failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Resolve drop position
// @Description Convert a horizontal position on the timeline into a snapped start time
// @Tags schedule
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param fraction query number true "Position within the business day, 0..1"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DropResponse
// @Failure 400 {object} httperr.Response
// @Router /schedule/drop [get]
func (h *ScheduleHandler) Drop(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	fraction, err := strconv.ParseFloat(c.Query("fraction"), 64)
	if err != nil {
		invalidParam(c, err, "Invalid fraction")
		return
	}
	view, err := h.q.ResolveDrop(c.Request.Context(), shopID, fraction, c.Query("date"))
	if err != nil {
		respondError(c, err, "Invalid drop query")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDropView(view))
}

// @Summary Mark holiday
// @Description Mark a staff member off for a day. Fails with 409 while active appointments exist unless force=true.
// @Tags schedule
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Staff ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param force query bool false "Mark even when appointments are booked"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /staff/{id}/holidays/{date} [put]
func (h *ScheduleHandler) MarkHoliday(c *gin.Context) {
	shopID, staffID, date, ok := h.holidayTarget(c)
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(c.Query("force"))
	if err := h.cmds.MarkHoliday(c.Request.Context(), shopID, staffID, date, force); err != nil {
		respondError(c, err, "Mark holiday failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Clear holiday
// @Tags schedule
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Staff ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /staff/{id}/holidays/{date} [delete]
func (h *ScheduleHandler) ClearHoliday(c *gin.Context) {
	shopID, staffID, date, ok := h.holidayTarget(c)
	if !ok {
		return
	}
	if err := h.cmds.ClearHoliday(c.Request.Context(), shopID, staffID, date); err != nil {
		respondError(c, err, "Clear holiday failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) holidayTarget(c *gin.Context) (uuid.UUID, uuid.UUID, time.Time, bool) {
	shopID, _ := middleware.GetShopID(c)
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid staff id")
		return uuid.Nil, uuid.Nil, time.Time{}, false
	}
	date, err := pgconv.ParseDateKey(c.Param("date"), h.loc)
	if err != nil {
		invalidParam(c, err, "Invalid date")
		return uuid.Nil, uuid.Nil, time.Time{}, false
	}
	return shopID, staffID, date, true
}
