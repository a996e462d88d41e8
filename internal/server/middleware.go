// internal/server/middleware.go
package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/common/observability"
)

// requestMetrics records prometheus and otel metrics and logs each request.
func requestMetrics(obs *observability.Observability, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
		obs.RecordRequest(c.Request.Context(), route, status, elapsed)

		log.Debug("request handled", map[string]interface{}{
			"method":     method,
			"path":       c.Request.URL.Path,
			"route":      route,
			"status":     status,
			"durationMs": elapsed.Milliseconds(),
			"clientIp":   c.ClientIP(),
		})
	}
}

// recovery turns a panic into a logged 500 with the usual error body.
func recovery(errs *apperrors.ErrorHandler) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		status, body := errs.Handle(apperrors.NewInternalError(fmt.Errorf("panic on %s: %v", c.Request.URL.Path, recovered)))
		c.AbortWithStatusJSON(status, body)
	})
}
