package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qualair/airquality-backend/internal/observability"
)

// HTTPMetrics records a counter and a duration histogram per request,
// labeled by the matched route so path parameters do not explode the
// cardinality.
type HTTPMetrics struct {
	metrics *observability.Metrics
}

func NewHTTPMetrics(metrics *observability.Metrics) *HTTPMetrics {
	return &HTTPMetrics{metrics: metrics}
}

func (hm *HTTPMetrics) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		hm.metrics.RequestsTotal.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Inc()
		hm.metrics.RequestDuration.
			WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
