//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"salon-scheduler/internal/handler/api"
	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/builder"
	"salon-scheduler/tests/common/httptest"
	commandsmock "salon-scheduler/tests/mock/commands"
	queriesmock "salon-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSchedulingCommands
	mockQueries  *queriesmock.MockScheduleQueries
	shopID       uuid.UUID
	staffID      uuid.UUID
}

func (s *ScheduleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSchedulingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockScheduleQueries(s.mockCtrl)
	h := api.NewScheduleHandler(s.mockCommands, s.mockQueries, builder.SalonZone)
	s.shopID, s.staffID = uuid.New(), uuid.New()

	g := s.router.Group("/api", middleware.RequireShop())
	g.GET("/schedule/placement", h.Placement)
	g.GET("/schedule/free-slots", h.FreeSlots)
	g.GET("/schedule/board", h.Board)
	g.GET("/schedule/drop", h.Drop)
	g.GET("/schedule/bulletin", h.Bulletin)
	g.POST("/schedule/bulletin", h.PostNote)
	g.PUT("/staff/:id/holidays/:date", h.MarkHoliday)
	g.DELETE("/staff/:id/holidays/:date", h.ClearHoliday)
}

func (s *ScheduleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}

func (s *ScheduleHandlerTestSuite) TestPlacement() {
	base := "/api/schedule/placement?staff_id=" + s.staffID.String() +
		"&start=2025-03-14T10:00:00%2B09:00&end=2025-03-14T11:00:00%2B09:00"

	s.Run("success: reports the blocking appointment", func() {
		blocker := uuid.New()
		exclude := uuid.New()
		s.mockQueries.EXPECT().
			CheckPlacement(gomock.Any(), s.shopID, s.staffID, gomock.Any(), gomock.Any(), &exclude).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, start, end time.Time, _ *uuid.UUID) (*queries.PlacementView, error) {
				s.True(start.Equal(builder.At(10, 0)))
				s.True(end.Equal(builder.At(11, 0)))
				return &queries.PlacementView{Reason: "overlap", ConflictWith: &blocker, Overridable: true}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"&exclude="+exclude.String(), nil, s.shopID.String())
		var body resdto.PlacementResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.OK)
		s.Equal(&blocker, body.ConflictWith)
		s.True(body.Overridable)
	})

	s.Run("error: 400 on malformed start", func() {
		url := "/api/schedule/placement?staff_id=" + s.staffID.String() + "&start=10:00&end=11:00"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid start")
	})

	s.Run("error: 400 on malformed exclude", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"&exclude=nope", nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid exclude")
	})
}

func (s *ScheduleHandlerTestSuite) TestFreeSlots() {
	url := "/api/schedule/free-slots?staff_id=" + s.staffID.String() + "&date=2025-03-14"

	s.Run("success", func() {
		s.mockQueries.EXPECT().FreeSlots(gomock.Any(), s.shopID, s.staffID, "2025-03-14").
			Return([]queries.FreeSlotView{{Start: builder.At(9, 0), End: builder.At(10, 0), DurationMinutes: 60}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.shopID.String())
		var body struct {
			FreeSlots []resdto.FreeSlotResponse `json:"free_slots"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.FreeSlots, 1)
		s.Equal(60, body.FreeSlots[0].DurationMinutes)
	})

	s.Run("error: 400 on bad date", func() {
		s.mockQueries.EXPECT().FreeSlots(gomock.Any(), s.shopID, s.staffID, "14/03").
			Return(nil, shared.ValidationErrorf("invalid date %q", "14/03"))

		url := "/api/schedule/free-slots?staff_id=" + s.staffID.String() + "&date=14/03"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ScheduleHandlerTestSuite) TestBoard() {
	view := builder.NewAppointmentBuilder().WithShop(s.shopID).WithStaff(s.staffID).BuildView()
	s.mockQueries.EXPECT().DayBoard(gomock.Any(), s.shopID, "2025-03-14").Return(&queries.DayBoardView{
		Date:     "2025-03-14",
		OpensAt:  builder.At(9, 0),
		ClosesAt: builder.At(21, 0),
		Rows: []queries.BoardRow{
			{
				Staff: queries.StaffView{ID: s.staffID, Name: "Aoi", Role: "stylist"},
				Cards: []queries.BoardCard{{AppointmentView: *view, Left: 8.33, Width: 8.33}},
			},
			{Staff: queries.StaffView{ID: uuid.New(), Name: "Ren"}, Holiday: true},
		},
		Notes: []queries.NoteView{{ID: uuid.New(), Date: "2025-03-14", Content: "towels at noon", CreatedAt: builder.At(8, 0)}},
	}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/schedule/board?date=2025-03-14", nil, s.shopID.String())
	var body resdto.DayBoardResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body.Rows, 2)
	s.Equal("Aoi", body.Rows[0].StaffName)
	s.Require().Len(body.Rows[0].Cards, 1)
	s.Equal(view.ID, body.Rows[0].Cards[0].ID)
	s.InDelta(8.33, body.Rows[0].Cards[0].Left, 1e-9)
	s.True(body.Rows[1].Holiday)
	s.Require().Len(body.Notes, 1)
	s.Equal("towels at noon", body.Notes[0].Content)
}

func (s *ScheduleHandlerTestSuite) TestBulletin() {
	s.Run("read: empty day renders an empty list", func() {
		s.mockQueries.EXPECT().Bulletin(gomock.Any(), s.shopID, "2025-03-14").Return([]queries.NoteView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/schedule/bulletin?date=2025-03-14", nil, s.shopID.String())
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"notes":[]}`, rec.Body.String())
	})

	s.Run("post: date is midnight in the business zone", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().PostNote(gomock.Any(), s.shopID, gomock.Any(), "towels at noon").
			DoAndReturn(func(_ context.Context, _ uuid.UUID, date time.Time, _ string) (uuid.UUID, error) {
				s.True(date.Equal(builder.At(0, 0)))
				return id, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/schedule/bulletin",
			reqdto.PostNoteRequest{Date: "2025-03-14", Content: "towels at noon"}, s.shopID.String())
		var body resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id, body.ID)
	})

	s.Run("post: 400 on malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/schedule/bulletin",
			reqdto.PostNoteRequest{Date: "14/03/2025", Content: "hi"}, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})

	s.Run("post: 400 when the note is too long", func() {
		s.mockCommands.EXPECT().PostNote(gomock.Any(), s.shopID, gomock.Any(), gomock.Any()).
			Return(uuid.Nil, shared.ValidationErrorf("note is too long"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/schedule/bulletin",
			reqdto.PostNoteRequest{Date: "2025-03-14", Content: "x"}, s.shopID.String())
		httptest.AssertValidationReason(s.T(), rec, "too long")
	})

	s.Run("post: shop scoped", func() {
		httptest.AssertShopScoped(s.T(), s.router, http.MethodPost, "/api/schedule/bulletin",
			reqdto.PostNoteRequest{Date: "2025-03-14", Content: "hi"})
	})
}

func (s *ScheduleHandlerTestSuite) TestDrop() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().ResolveDrop(gomock.Any(), s.shopID, 0.5, "2025-03-14").
			Return(&queries.DropView{Start: builder.At(15, 0), Fraction: 0.5}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/schedule/drop?fraction=0.5&date=2025-03-14", nil, s.shopID.String())
		var body resdto.DropResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Start.Equal(builder.At(15, 0)))
	})

	s.Run("error: 400 on non numeric fraction", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/schedule/drop?fraction=half&date=2025-03-14", nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid fraction")
	})
}

func (s *ScheduleHandlerTestSuite) TestHolidays() {
	url := "/api/staff/" + s.staffID.String() + "/holidays/2025-03-14"

	s.Run("mark: date is midnight in the business zone", func() {
		s.mockCommands.EXPECT().MarkHoliday(gomock.Any(), s.shopID, s.staffID, gomock.Any(), false).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, date time.Time, _ bool) error {
				s.True(date.Equal(builder.At(0, 0)))
				return nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, s.shopID.String())
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("mark: 409 while appointments are booked", func() {
		booked := uuid.New()
		s.mockCommands.EXPECT().MarkHoliday(gomock.Any(), s.shopID, s.staffID, gomock.Any(), false).
			Return(shared.NewConflictError(&booked, false))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, s.shopID.String())
		httptest.AssertConflict(s.T(), rec, &booked, false)
	})

	s.Run("mark: force", func() {
		s.mockCommands.EXPECT().MarkHoliday(gomock.Any(), s.shopID, s.staffID, gomock.Any(), true).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url+"?force=true", nil, s.shopID.String())
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("clear", func() {
		s.mockCommands.EXPECT().ClearHoliday(gomock.Any(), s.shopID, s.staffID, gomock.Any()).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.shopID.String())
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/staff/"+s.staffID.String()+"/holidays/March-14", nil, s.shopID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})
}
