package api

import (
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler manages the shop's staff, service menu and retail products.
type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary List staff
// @Tags catalog
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Success 200 {array} resdto.StaffResponse
// @Router /staff [get]
func (h *CatalogHandler) ListStaff(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	staff, err := h.q.ListStaff(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err, "List staff failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": resdto.FromStaffViews(staff)})
}

// @Summary Create staff
// @Tags catalog
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param request body reqdto.CreateStaffRequest true "Create staff request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /staff [post]
func (h *CatalogHandler) CreateStaff(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	var req reqdto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err, "Invalid request")
		return
	}
	id, err := h.cmds.CreateStaff(c.Request.Context(), shopID, req.ToParams())
	if err != nil {
		respondError(c, err, "Create staff failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Rename staff
// @Tags catalog
// @Accept json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Staff ID"
// @Param request body reqdto.RenameStaffRequest true "Rename staff request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /staff/{id} [patch]
func (h *CatalogHandler) RenameStaff(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid staff id")
		return
	}
	var req reqdto.RenameStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err, "Invalid request")
		return
	}
	if err := h.cmds.RenameStaff(c.Request.Context(), shopID, staffID, req.Name); err != nil {
		respondError(c, err, "Rename staff failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List services
// @Description Service menu ordered by price
// @Tags catalog
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Success 200 {array} resdto.ServiceResponse
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	services, err := h.q.ListServices(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err, "List services failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": resdto.FromServiceViews(services)})
}

// @Summary Get service
// @Tags catalog
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid service id")
		return
	}
	view, err := h.q.GetService(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, err, "Get service failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary Create service
// @Tags catalog
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param request body reqdto.CreateServiceRequest true "Create service request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	var req reqdto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err, "Invalid request")
		return
	}
	id, err := h.cmds.CreateService(c.Request.Context(), shopID, req.ToParams())
	if err != nil {
		respondError(c, err, "Create service failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Success 200 {array} resdto.ProductResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	products, err := h.q.ListProducts(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err, "List products failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": resdto.FromProductViews(products)})
}

// @Summary Get product
// @Tags catalog
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid product id")
		return
	}
	view, err := h.q.GetProduct(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, err, "Get product failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary Create product
// @Tags catalog
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param request body reqdto.CreateProductRequest true "Create product request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err, "Invalid request")
		return
	}
	id, err := h.cmds.CreateProduct(c.Request.Context(), shopID, req.ToParams())
	if err != nil {
		respondError(c, err, "Create product failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Adjust stock
// @Description Apply a signed manual correction. Decrements stop at zero and report truncated=true.
// @Tags catalog
// @Accept json
// @Produce json
// @Param X-Shop-ID header string true "Shop ID"
// @Param id path string true "Product ID"
// @Param request body reqdto.AdjustStockRequest true "Adjust stock request"
// @Success 200 {object} resdto.StockAdjustmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /products/{id}/stock [post]
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	shopID, _ := middleware.GetShopID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, err, "Invalid product id")
		return
	}
	var req reqdto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err, "Invalid request")
		return
	}
	res, err := h.cmds.AdjustStock(c.Request.Context(), shopID, id, *req.Delta)
	if err != nil {
		respondError(c, err, "Adjust stock failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockAdjustment(res))
}
