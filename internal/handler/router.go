package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salon-scheduler/internal/handler/api"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Appointments *api.AppointmentHandler
	Schedule     *api.ScheduleHandler
	Sales        *api.SaleHandler
	Catalog      *api.CatalogHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, gatherer prometheus.Gatherer) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, gatherer)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, gatherer prometheus.Gatherer) {
	engine.GET("/health", healthCheck)
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(middleware.RequireShop())
	{
		appointments := apiGroup.Group("/appointments")
		addRoutes(appointments, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Appointments.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Appointments.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Appointments.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Appointments.Reschedule},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Appointments.Cancel},
			{Method: http.MethodPost, Path: "/:id/checkout", Handler: h.Appointments.Checkout},
		})

		schedule := apiGroup.Group("/schedule")
		addRoutes(schedule, []route{
			{Method: http.MethodGet, Path: "/placement", Handler: h.Schedule.Placement},
			{Method: http.MethodGet, Path: "/free-slots", Handler: h.Schedule.FreeSlots},
			{Method: http.MethodGet, Path: "/board", Handler: h.Schedule.Board},
			{Method: http.MethodGet, Path: "/drop", Handler: h.Schedule.Drop},
			{Method: http.MethodGet, Path: "/bulletin", Handler: h.Schedule.Bulletin},
			{Method: http.MethodPost, Path: "/bulletin", Handler: h.Schedule.PostNote},
		})

		staff := apiGroup.Group("/staff")
		addRoutes(staff, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListStaff},
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateStaff},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Catalog.RenameStaff},
			{Method: http.MethodPut, Path: "/:id/holidays/:date", Handler: h.Schedule.MarkHoliday},
			{Method: http.MethodDelete, Path: "/:id/holidays/:date", Handler: h.Schedule.ClearHoliday},
		})

		services := apiGroup.Group("/services")
		addRoutes(services, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListServices},
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateService},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.GetService},
		})

		products := apiGroup.Group("/products")
		addRoutes(products, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListProducts},
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateProduct},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.GetProduct},
			{Method: http.MethodPost, Path: "/:id/stock", Handler: h.Catalog.AdjustStock},
		})

		sales := apiGroup.Group("/sales")
		addRoutes(sales, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Sales.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Sales.Get},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/customers/:id/last-visit", Handler: h.Sales.LastVisit},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
