package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/halchemylab/marketing-seo-meta-tag-analyzer/metrics"
)

// Metrics records Prometheus request counters and latency histograms.
// The route template is used as the path label so URLs with parameters do
// not explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(elapsed)
	}
}
