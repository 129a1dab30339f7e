package middleware

import (
	"net/http"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ShopIDHeader = "X-Shop-ID"
	ctxShopIDKey = "shop_id"
)

var errShopRequired = errs.New("X-Shop-ID header must be a UUID")

// RequireShop scopes the request to the shop named in the X-Shop-ID header.
func RequireShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID, err := uuid.Parse(c.GetHeader(ShopIDHeader))
		if err != nil || shopID == uuid.Nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errShopRequired, "X-Shop-ID header required", nil)
			return
		}
		c.Set(ctxShopIDKey, shopID)
		c.Next()
	}
}

func GetShopID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxShopIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
