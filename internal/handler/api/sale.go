package api

import (
	"net/http"
	"strconv"

	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct {
	q queries.SaleQueries
}

func NewSaleHandler(q queries.SaleQueries) *SaleHandler {
	return &SaleHandler{q: q}
}

// @Summary List sales
// @Description List sales created in [from, to), newest first, with keyset pagination
// @Tags sales
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param from query string true "RFC3339 range start"
// @Param to query string true "RFC3339 range end"
// @Param limit query int false "Max items (default 50)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.SaleListItemResponse
// @Failure 400 {object} httperr.Response
// @Router /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	from, to, err := parseRange(c)
	if err != nil {
		invalidParam(c, err, "Invalid from/to")
		return
	}
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	items, next, err := h.q.ListSales(c.Request.Context(), shopID, from, to, cursor, limit)
	if err != nil {
		respondError(c, err, "Invalid sales query")
		return
	}
	resp := gin.H{"sales": resdto.FromSaleList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get sale
// @Tags sales
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Sale ID"
// @Success 200 {object} resdto.SaleResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid id")
		return
	}
	view, err := h.q.GetSale(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, err, "Invalid request")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSaleView(view))
}

// @Summary Customer last visit
// @Description Most recent sale of a customer with its memo
// @Tags sales
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Customer ID"
// @Success 200 {object} resdto.LastVisitResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /customers/{id}/last-visit [get]
func (h *SaleHandler) LastVisit(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid customer id")
		return
	}
	view, err := h.q.LastVisit(c.Request.Context(), shopID, customerID)
	if err != nil {
		respondError(c, err, "Invalid request")
		return
	}
	c.JSON(http.StatusOK, resdto.FromLastVisitView(view))
}
