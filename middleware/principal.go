package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"hotel-management/utils"

	"github.com/gin-gonic/gin"
)

const (
	UserIDHeader = "X-User-ID"
	UserIDKey    = "userID"
)

// RequireUser takes the authenticated user id from the X-User-ID header set
// by the upstream auth proxy and stores it under UserIDKey.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		id, err := strconv.ParseUint(raw, 10, 64)
		if raw == "" || err != nil || id == 0 {
			utils.AbortJSONError(c, http.StatusUnauthorized, "error.unauthenticated", "missing or invalid "+UserIDHeader+" header")
			return
		}
		c.Set(UserIDKey, uint(id))
		c.Next()
	}
}
