package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/platform/observability"
)

// Metrics records the count and latency of every request by method and route template.
// A nil m disables it.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, routeOf(c), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
