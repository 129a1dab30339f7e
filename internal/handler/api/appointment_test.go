//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/sale"
	"salon-scheduler/internal/handler/api"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/builder"
	"salon-scheduler/tests/common/httptest"
	"salon-scheduler/tests/common/testutil"
	commandsmock "salon-scheduler/tests/mock/commands"
	queriesmock "salon-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSchedulingCommands
	mockCheckout *commandsmock.MockCheckoutCommands
	mockQueries  *queriesmock.MockScheduleQueries
	handler      *api.AppointmentHandler
	shopID       uuid.UUID
}

func (s *AppointmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSchedulingCommands(s.mockCtrl)
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockScheduleQueries(s.mockCtrl)
	s.handler = api.NewAppointmentHandler(s.mockCommands, s.mockCheckout, s.mockQueries)
	s.shopID = uuid.New()

	g := s.router.Group("/api", middleware.RequireShop())
	g.POST("/appointments", s.handler.Create)
	g.GET("/appointments", s.handler.List)
	g.GET("/appointments/:id", s.handler.Get)
	g.PATCH("/appointments/:id", s.handler.Reschedule)
	g.DELETE("/appointments/:id", s.handler.Cancel)
	g.POST("/appointments/:id/checkout", s.handler.Checkout)
}

func (s *AppointmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}

type testCaseAppointment struct {
	name       string
	mutate     testutil.Edit
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestCreate() {
	url := "/api/appointments"
	b := builder.NewAppointmentBuilder().WithShop(s.shopID)
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()
	result := &commands.AppointmentResult{ID: view.ID, Version: 1}

	s.Run("success: returns 201 with the stored appointment", func() {
		s.mockCommands.EXPECT().CreateAppointment(gomock.Any(), s.shopID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, p commands.CreateAppointmentParams) (*commands.AppointmentResult, error) {
				s.Equal(reqBody.StaffID, p.StaffID)
				s.True(p.Start.Equal(reqBody.StartTime))
				return result, nil
			})
		s.mockQueries.EXPECT().GetAppointment(gomock.Any(), s.shopID, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())

		var body resdto.AppointmentWriteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.Appointment.ID)
		s.Equal("Cut", body.Appointment.MenuName)
		s.False(body.Overridden)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		cases := []testCaseAppointment{
			{name: "missing field: staff_id", mutate: testutil.Drop("staff_id"), expectCode: http.StatusBadRequest},
			{name: "missing field: service_id", mutate: testutil.Drop("service_id"), expectCode: http.StatusBadRequest},
			{name: "missing field: start_time", mutate: testutil.Drop("start_time"), expectCode: http.StatusBadRequest},
			{name: "missing field: customer_name", mutate: testutil.Drop("customer_name"), expectCode: http.StatusBadRequest},
			{name: "malformed start_time", mutate: testutil.Set("start_time", "tomorrow"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.Body(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.shopID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 400 without shop header", func() {
		httptest.AssertShopScoped(s.T(), s.router, http.MethodPost, url, reqBody)
	})

	s.Run("error: 409 with the conflicting appointment", func() {
		other := uuid.New()
		s.mockCommands.EXPECT().CreateAppointment(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, shared.NewConflictError(&other, false))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertConflict(s.T(), rec, &other, false)
	})

	s.Run("error: 409 on staff holiday", func() {
		s.mockCommands.EXPECT().CreateAppointment(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, shared.NewConflictError(nil, true))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertConflict(s.T(), rec, nil, true)
	})

	s.Run("error: 404 for unknown service", func() {
		s.mockCommands.EXPECT().CreateAppointment(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, shared.NotFoundErrorf("service %s not found", reqBody.ServiceID))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 500 on infrastructure failure", func() {
		s.mockCommands.EXPECT().CreateAppointment(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, infra.WrapRepoErr("failed to insert appointment", errs.New("connection reset")))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestList() {
	view := builder.NewAppointmentBuilder().WithShop(s.shopID).BuildView()

	s.Run("success: filters by staff", func() {
		s.mockQueries.EXPECT().ListAppointments(gomock.Any(), s.shopID, &view.StaffID, gomock.Any(), gomock.Any()).
			Return([]*queries.AppointmentView{view}, nil)

		url := "/api/appointments?from=2025-03-14T00:00:00%2B09:00&to=2025-03-15T00:00:00%2B09:00&staff_id=" + view.StaffID.String()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.shopID.String())

		var body struct {
			Appointments []resdto.AppointmentResponse `json:"appointments"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Appointments, 1)
		s.Equal(view.ID, body.Appointments[0].ID)
	})

	s.Run("error: 400 on missing range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/appointments", nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from/to")
	})

	s.Run("error: 400 when the range is rejected", func() {
		s.mockQueries.EXPECT().ListAppointments(gomock.Any(), s.shopID, nil, gomock.Any(), gomock.Any()).
			Return(nil, shared.ValidationErrorf("range must not exceed 62 days"))

		url := "/api/appointments?from=2025-01-01T00:00:00Z&to=2025-06-01T00:00:00Z"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AppointmentHandlerTestSuite) TestGet() {
	view := builder.NewAppointmentBuilder().WithShop(s.shopID).BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetAppointment(gomock.Any(), s.shopID, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/appointments/"+view.ID.String(), nil, s.shopID.String())
		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.StaffName, body.StaffName)
		s.True(view.StartTime.Equal(body.StartTime))
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/appointments/not-a-uuid", nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 for another shop's appointment", func() {
		s.mockQueries.EXPECT().GetAppointment(gomock.Any(), s.shopID, view.ID).
			Return(nil, errs.Mark(infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound), shared.ErrNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/appointments/"+view.ID.String(), nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestReschedule / TestCancel
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestReschedule() {
	b := builder.NewAppointmentBuilder().WithShop(s.shopID).WithSlot(builder.At(14, 0), builder.At(15, 0))
	view := b.BuildView()
	url := "/api/appointments/" + view.ID.String()
	reqBody := map[string]any{"start_time": builder.At(14, 0), "version": 1}

	s.Run("success: passes the version token", func() {
		s.mockCommands.EXPECT().RescheduleAppointment(gomock.Any(), s.shopID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, p commands.RescheduleParams) (*commands.AppointmentResult, error) {
				s.Equal(view.ID, p.ID)
				s.Nil(p.StaffID)
				s.Require().NotNil(p.Version)
				s.Equal(1, *p.Version)
				return &commands.AppointmentResult{ID: view.ID, Version: 2, Overridden: true}, nil
			})
		s.mockQueries.EXPECT().GetAppointment(gomock.Any(), s.shopID, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.shopID.String())
		var body resdto.AppointmentWriteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Overridden)
	})

	s.Run("error: 409 on stale version", func() {
		s.mockCommands.EXPECT().RescheduleAppointment(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, errs.Mark(errs.New("version is stale"), shared.ErrConcurrency))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "reload")
	})

	s.Run("error: 409 when already completed", func() {
		s.mockCommands.EXPECT().RescheduleAppointment(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, errs.Mark(errs.New("status=completed"), shared.ErrAlreadyCompleted))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer active")
	})
}

func (s *AppointmentHandlerTestSuite) TestCancel() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().CancelAppointment(gomock.Any(), s.shopID, id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/appointments/"+id.String(), nil, s.shopID.String())
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404", func() {
		s.mockCommands.EXPECT().CancelAppointment(gomock.Any(), s.shopID, id).
			Return(shared.NotFoundErrorf("appointment %s not found", id))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/appointments/"+id.String(), nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestCheckout() {
	apptID, cutID, shampooID := uuid.New(), uuid.New(), uuid.New()
	url := "/api/appointments/" + apptID.String() + "/checkout"
	reqBody := map[string]any{
		"lines": []map[string]any{
			{"type": "service", "item_id": cutID, "quantity": 1},
			{"type": "product", "item_id": shampooID, "quantity": 2, "unit_price": 3000},
		},
		"payment_method": "cash",
		"memo":           "ash beige 8",
	}

	s.Run("success: 201 with receipt", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), s.shopID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, p commands.CheckoutParams) (*commands.SaleReceipt, error) {
				s.Equal(apptID, p.AppointmentID)
				s.Require().Len(p.Lines, 2)
				s.Equal(catalog.ItemProduct, p.Lines[1].Type)
				s.Require().NotNil(p.Lines[1].UnitPrice)
				s.Equal(int64(3000), *p.Lines[1].UnitPrice)
				s.Nil(p.Lines[0].UnitPrice)
				return &commands.SaleReceipt{
					SaleID:        uuid.New(),
					AppointmentID: apptID,
					Total:         11500,
					Net:           10455,
					Tax:           1045,
					PaymentMethod: sale.PaymentCash,
					Lines: []commands.ReceiptLine{
						{ItemType: catalog.ItemService, ItemID: cutID, Name: "Cut", UnitPrice: 5500, Quantity: 1, TaxRate: "0.1", LineTotal: 5500},
						{ItemType: catalog.ItemProduct, ItemID: shampooID, Name: "Shampoo", UnitPrice: 3000, Quantity: 2, TaxRate: "0.1", LineTotal: 6000},
					},
					StockAfter: map[uuid.UUID]int{shampooID: 3},
				}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		var body resdto.ReceiptResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(11500), body.Total)
		s.Equal("cash", body.PaymentMethod)
		s.Equal(3, body.StockAfter[shampooID.String()])
		s.Equal("Shampoo", body.Lines[1].ItemName)
	})

	s.Run("error: 400 on malformed body", func() {
		cases := []struct {
			name string
			edit testutil.Edit
		}{
			{name: "without lines", edit: testutil.Drop("lines")},
			{name: "line without quantity", edit: testutil.Drop("lines.0.quantity")},
			{name: "line without item", edit: testutil.Drop("lines.1.item_id")},
			{name: "price is not a number", edit: testutil.Set("lines.1.unit_price", "free")},
			{name: "without payment method", edit: testutil.Drop("payment_method")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.Body(s.T(), reqBody, tc.edit)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.shopID.String())
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 400 when a line total would not fit", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, shared.ValidationErrorf("line 2: unit price exceeds %d", catalog.MaxPrice))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertValidationReason(s.T(), rec, "unit price exceeds")
	})

	s.Run("error: 400 on domain validation", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, errs.Mark(sale.ErrInvalidPayment, shared.ErrValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Checkout failed")
	})

	s.Run("error: 409 when already checked out", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, errs.Mark(errs.New("status=completed"), shared.ErrAlreadyCompleted))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 500 with steps when the commit outcome is unknown", func() {
		saleID := uuid.New()
		steps := []string{commands.StepValidate, commands.StepLockAppointment, commands.StepCommit}
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, shared.NewPartialCommitError(saleID, steps, errs.New("connection reset")))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "outcome unknown")
		detail := httptest.DecodeErrorDetail(s.T(), rec)
		s.Equal(saleID.String(), detail["sale_id"])
		s.Equal([]any{"validate", "lock_appointment", "commit"}, detail["steps"])
	})
}
