package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
)

// CronSecret guards scheduler hooks. An empty secret disables the hook entirely.
func CronSecret(secret string) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	return func(c *gin.Context) {
		if secret == "" {
			respond.Error(c, http.StatusNotFound, "not_found", "Not found", nil)
			return
		}
		got := strings.TrimSpace(c.GetHeader("X-Cron-Secret"))
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
