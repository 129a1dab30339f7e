//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	testCases := []struct {
		name       string
		handler    gin.HandlerFunc
		expectCode int
		expectMsg  string
	}{
		{
			name: "public error response is written once",
			handler: func(c *gin.Context) {
				_ = c.Error(gin.Error{
					Err:  errs.New("bad input"),
					Type: gin.ErrorTypePublic,
					Meta: httperr.NewResponse(http.StatusBadRequest, "Invalid request", nil),
				})
			},
			expectCode: http.StatusBadRequest,
			expectMsg:  "Invalid request",
		},
		{
			name: "private error becomes a 500 envelope",
			handler: func(c *gin.Context) {
				_ = c.Error(errs.New("driver exploded"))
			},
			expectCode: http.StatusInternalServerError,
			expectMsg:  "Internal server error",
		},
		{
			name:       "panic is recovered into the same envelope",
			handler:    func(c *gin.Context) { panic("nil map") },
			expectCode: http.StatusInternalServerError,
			expectMsg:  "Internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
			r.GET("/boom", tc.handler)

			rec := httptest.PerformRequest(t, r, http.MethodGet, "/boom", nil, "")
			httptest.AssertErrorResponse(t, rec, tc.expectCode, tc.expectMsg)
		})
	}

	t.Run("explicit status without body is kept", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(middleware.ErrorHandler())
		r.DELETE("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		rec := httptest.PerformRequest(t, r, http.MethodDelete, "/x", nil, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
