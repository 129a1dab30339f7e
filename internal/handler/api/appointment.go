package api

import (
	"net/http"
	"time"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	cmds     commands.SchedulingCommands
	checkout commands.CheckoutCommands
	q        queries.ScheduleQueries
}

func NewAppointmentHandler(cmds commands.SchedulingCommands, checkout commands.CheckoutCommands, q queries.ScheduleQueries) *AppointmentHandler {
	return &AppointmentHandler{cmds: cmds, checkout: checkout, q: q}
}

// @Summary Create appointment
// @Description Book a service for a staff member. The end time follows the service duration.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param request body reqdto.CreateAppointmentRequest true "Create appointment request"
// @Success 201 {object} resdto.AppointmentWriteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err, "Invalid request")
		return
	}
	result, err := h.cmds.CreateAppointment(c.Request.Context(), shopID, req.ToParams())
	if err != nil {
		respondError(c, err, "Create appointment failed")
		return
	}
	h.respondWrite(c, http.StatusCreated, shopID, result)
}

// @Summary List appointments
// @Description List non-cancelled appointments overlapping [from, to), optionally for one staff member
// @Tags appointments
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param from query string true "RFC3339 range start"
// @Param to query string true "RFC3339 range end"
// @Param staff_id query string false "Staff ID"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	from, to, err := parseRange(c)
	if err != nil {
		invalidParam(c, err, "Invalid from/to")
		return
	}
	var staffID *uuid.UUID
	if v := c.Query("staff_id"); v != "" {
		id, perr := uuid.Parse(v)
		if perr != nil {
			invalidParam(c, perr, "Invalid staff_id")
			return
		}
		staffID = &id
	}
	items, err := h.q.ListAppointments(c.Request.Context(), shopID, staffID, from, to)
	if err != nil {
		respondError(c, err, "Invalid query")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": resdto.FromAppointmentList(items)})
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid id")
		return
	}
	view, err := h.q.GetAppointment(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, err, "Invalid request")
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Reschedule appointment
// @Description Move an appointment to a new start time and optionally another staff member, keeping its duration
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RescheduleAppointmentRequest true "Reschedule request"
// @Success 200 {object} resdto.AppointmentWriteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid id")
		return
	}
	var req reqdto.RescheduleAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		invalidParam(c, bindErr, "Invalid request")
		return
	}
	result, err := h.cmds.RescheduleAppointment(c.Request.Context(), shopID, req.ToParams(id))
	if err != nil {
		respondError(c, err, "Reschedule failed")
		return
	}
	h.respondWrite(c, http.StatusOK, shopID, result)
}

// @Summary Cancel appointment
// @Tags appointments
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid id")
		return
	}
	if err := h.cmds.CancelAppointment(c.Request.Context(), shopID, id); err != nil {
		respondError(c, err, "Cancel failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check out appointment
// @Description Record the sale for an appointment, decrement product stock and complete the appointment atomically
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Appointment ID"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.ReceiptResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /appointments/{id}/checkout [post]
func (h *AppointmentHandler) Checkout(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid id")
		return
	}
	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		invalidParam(c, bindErr, "Invalid request")
		return
	}
	receipt, err := h.checkout.Checkout(c.Request.Context(), shopID, req.ToParams(id))
	if err != nil {
		respondError(c, err, "Checkout failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReceipt(receipt))
}

func (h *AppointmentHandler) respondWrite(c *gin.Context, status int, shopID uuid.UUID, result *commands.AppointmentResult) {
	view, err := h.q.GetAppointment(c.Request.Context(), shopID, result.ID)
	if err != nil {
		respondError(c, err, "Failed to load appointment")
		return
	}
	c.JSON(status, resdto.AppointmentWriteResponse{
		Appointment: resdto.FromAppointmentView(view),
		Overridden:  result.Overridden,
	})
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
