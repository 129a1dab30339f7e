//go:build unit || e2e

package httptest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-scheduler/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const jsonContentType = "application/json; charset=utf-8"

// AssertJSON checks the response was rendered by gin's JSON renderer.
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, jsonContentType, w.Header().Get("Content-Type"))
}

// AssertShopScoped sends the request with a missing, a malformed and a nil
// X-Shop-ID and expects each to be rejected before the handler runs. Mocks
// behind the route must not expect a call.
func AssertShopScoped(t *testing.T, router *gin.Engine, method, path string, body any) {
	t.Helper()

	for _, header := range []string{"", "shop-1", uuid.Nil.String()} {
		w := PerformRequest(t, router, method, path, body, header)
		AssertErrorResponse(t, w, http.StatusBadRequest, middleware.ShopIDHeader+" header required")
		AssertJSON(t, w)
	}
}
